package service

import (
	"github.com/yakoovad/buoy-notify/internal/model"
	"github.com/yakoovad/buoy-notify/internal/repository"
)

func toModelTeam(t *repository.Team) *model.Team {
	return &model.Team{
		ID:       t.ID,
		AuthorID: t.AuthorID,
		Title:    t.Title,
		Status:   model.TeamStatus(t.Status),
	}
}

func toModelUser(u *repository.User) *model.User {
	return &model.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Gender:      model.Gender(u.Gender),
		SMSPhone:    u.SMSPhone,
		SMSProvider: u.SMSProvider,
	}
}

func toModelAlert(a *repository.Alert, teamIDs []string) *model.Alert {
	return &model.Alert{
		ID:       a.ID,
		AuthorID: a.AuthorID,
		Title:    a.Title,
		Hash:     a.Hash,
		TeamIDs:  teamIDs,
	}
}
