package importer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/logger"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/repositories"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// Result counts what an import did. Row errors do not stop the import.
type Result struct {
	TotalRows int      `json:"totalRows"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Errors    []string `json:"errors"`
}

// MemberImporter loads members from CSV into the user store
type MemberImporter struct {
	userRepo repositories.UserRepository
	// Password is set on created members. Empty means a random password per member.
	Password   string
	DryRun     bool
	bcryptCost int
	now        func() time.Time
}

// NewMemberImporter creates a new MemberImporter
func NewMemberImporter(userRepo repositories.UserRepository) *MemberImporter {
	return &MemberImporter{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

type columns struct {
	firstName, lastName, email, city, state, country, interests, status int
}

// Import reads a CSV with a header row. Recognised columns: firstName, lastName,
// email, city, state, country, interests (";" separated), relationshipStatus.
func (i *MemberImporter) Import(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := columns{
		firstName: findColumnIndex(header, "firstName", "first name", "first_name"),
		lastName:  findColumnIndex(header, "lastName", "last name", "last_name", "surname"),
		email:     findColumnIndex(header, "email", "email address"),
		city:      findColumnIndex(header, "city"),
		state:     findColumnIndex(header, "state", "region"),
		country:   findColumnIndex(header, "country"),
		interests: findColumnIndex(header, "interests"),
		status:    findColumnIndex(header, "relationshipStatus", "relationship status", "relationship_status"),
	}
	if cols.email == -1 || cols.firstName == -1 || cols.lastName == -1 {
		return nil, errors.New("CSV must have firstName, lastName and email columns")
	}

	res := &Result{Errors: []string{}}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		res.TotalRows++
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", res.TotalRows, err))
			continue
		}
		if err := i.importRow(ctx, cols, row, res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", res.TotalRows, err))
		}
	}

	logger.Info("member import finished",
		"rows", res.TotalRows, "created", res.Created, "updated", res.Updated,
		"errors", len(res.Errors), "dry_run", i.DryRun)
	return res, nil
}

func (i *MemberImporter) importRow(ctx context.Context, cols columns, row []string, res *Result) error {
	email := strings.ToLower(field(row, cols.email))
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email %q", email)
	}
	firstName, lastName := field(row, cols.firstName), field(row, cols.lastName)
	if firstName == "" || lastName == "" {
		return errors.New("firstName and lastName are required")
	}
	status := models.RelationshipStatus(strings.ToLower(field(row, cols.status)))
	if !status.Valid() {
		return fmt.Errorf("invalid relationship status %q", status)
	}

	var location *models.Location
	if loc := (models.Location{City: field(row, cols.city), State: field(row, cols.state), Country: field(row, cols.country)}); loc != (models.Location{}) {
		location = &loc
	}
	interests := services.CleanInterests(strings.Split(field(row, cols.interests), ";"))

	existing, err := i.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.Location = location
		existing.Interests = interests
		existing.RelationshipStatus = status
		if !i.DryRun {
			if err := i.userRepo.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to update %s: %w", email, err)
			}
		}
		res.Updated++
		return nil
	case !apperrors.IsNotFound(apperrors.From(err)):
		return fmt.Errorf("failed to look up %s: %w", email, err)
	}

	hash, err := i.hashPassword()
	if err != nil {
		return err
	}
	user := &models.User{
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
		PasswordHash:       hash,
		Location:           location,
		Interests:          interests,
		RelationshipStatus: status,
		Privacy:            models.DefaultPrivacy(),
		Role:               models.RoleUser,
		IsActive:           true,
		JoinDate:           i.now(),
	}
	if !i.DryRun {
		if err := i.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create %s: %w", email, err)
		}
	}
	res.Created++
	return nil
}

func (i *MemberImporter) hashPassword() (string, error) {
	password := i.Password
	if password == "" {
		var err error
		if password, err = randomString(24); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// findColumnIndex returns the index of the first header matching any name, case-insensitively
func findColumnIndex(header []string, names ...string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range names {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return -1
}

func randomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b)[:length], nil
}
