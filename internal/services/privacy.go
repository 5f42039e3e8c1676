package services

import "github.com/spiritualpurity/spiritual-purity-backend/internal/models"

// ToPublicProfile strips the fields the member keeps private. Name, picture, bio
// and join date are always visible. A member without privacy settings gets the
// registration defaults.
func ToPublicProfile(u *models.User) models.PublicProfile {
	p := models.PublicProfile{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Denomination:   u.Denomination,
		JoinDate:       u.JoinDate,
	}

	privacy := u.Privacy
	if privacy == nil {
		privacy = models.DefaultPrivacy()
	}
	if privacy.ShowLocation && u.Location != nil {
		loc := *u.Location
		p.Location = &loc
	}
	if privacy.ShowRelationshipStatus {
		p.RelationshipStatus = u.RelationshipStatus
	}
	if privacy.ShowInterests && len(u.Interests) > 0 {
		p.Interests = append([]string(nil), u.Interests...)
	}
	return p
}

// FilterProfiles applies ToPublicProfile to every user
func FilterProfiles(users []*models.User) []models.PublicProfile {
	out := make([]models.PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, ToPublicProfile(u))
	}
	return out
}
