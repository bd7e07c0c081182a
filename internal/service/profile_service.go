package service

import (
	"skillup_backend/internal/model"
)

type Profile struct {
	DisplayName  string              `json:"displayName"`
	Email        string              `json:"email"`
	Initial      string              `json:"initial"`
	Provider     string              `json:"provider"`
	Achievements []model.Achievement `json:"achievements"`
}

type ProfileService struct {
	Catalog *CatalogService
}

func NewProfileService(catalogService *CatalogService) *ProfileService {
	return &ProfileService{Catalog: catalogService}
}

func (s *ProfileService) Profile(session *model.Session) *Profile {
	achievements := s.Catalog.Snapshot().Achievements
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	return &Profile{
		DisplayName:  session.Name(),
		Email:        session.EmailOrDefault(),
		Initial:      session.Initial(),
		Provider:     session.Provider,
		Achievements: achievements,
	}
}
