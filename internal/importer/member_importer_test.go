package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var importNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newImporter(repo *mocks.UserRepository) *MemberImporter {
	i := NewMemberImporter(repo)
	i.bcryptCost = bcrypt.MinCost
	i.now = func() time.Time { return importNow }
	return i
}

const sampleCSV = `First Name,Last Name,Email,City,State,Country,Interests,Relationship Status
Ruth,Moab,RUTH@example.com,Bethlehem,Judah,Israel,gleaning; worship;Worship,widowed
Boaz,Ephrath,boaz@example.com,,,,,married
,Nameless,nobody@example.com,,,,,
Orpah,Moab,orpah@example.com,,,,,complicated
`

func TestImport(t *testing.T) {
	repo := new(mocks.UserRepository)
	existing := &models.User{Email: "boaz@example.com", FirstName: "B"}
	repo.On("FindByEmail", mock.Anything, "ruth@example.com").Return(nil, mongo.ErrNoDocuments)
	repo.On("FindByEmail", mock.Anything, "boaz@example.com").Return(existing, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	imp := newImporter(repo)
	imp.Password = "changeme123"
	res, err := imp.Import(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Len(t, res.Errors, 2)

	created := repo.Calls[1].Arguments.Get(1).(*models.User)
	assert.Equal(t, "ruth@example.com", created.Email)
	assert.Equal(t, []string{"gleaning", "worship"}, created.Interests)
	assert.Equal(t, "Judah", created.Location.State)
	assert.Equal(t, models.RelationshipWidowed, created.RelationshipStatus)
	assert.True(t, created.IsActive)
	assert.Equal(t, importNow, created.JoinDate)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("changeme123")))

	assert.Equal(t, "Boaz", existing.FirstName)
	assert.Nil(t, existing.Location)
	assert.Equal(t, models.RelationshipMarried, existing.RelationshipStatus)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	imp := newImporter(repo)
	imp.DryRun = true
	res, err := imp.Import(context.Background(), strings.NewReader("firstName,lastName,email\nA,B,a@b.c\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImport_MissingColumns(t *testing.T) {
	_, err := newImporter(new(mocks.UserRepository)).Import(context.Background(), strings.NewReader("name,phone\n"))
	assert.Error(t, err)
}

func TestFindColumnIndex(t *testing.T) {
	header := []string{" Email Address ", "first_name"}
	assert.Equal(t, 0, findColumnIndex(header, "email", "email address"))
	assert.Equal(t, 1, findColumnIndex(header, "firstName", "first_name"))
	assert.Equal(t, -1, findColumnIndex(header, "city"))
}
