package service

import (
	"context"
	"slices"

	"github.com/yakoovad/buoy-notify/internal/repository"
)

// memoryNotifications is an in-memory NotificationRepository.
type memoryNotifications struct {
	nextID int64
	rows   []*repository.PendingNotification
	locks  []string
}

func (m *memoryNotifications) LockTeam(_ context.Context, teamID string) error {
	m.locks = append(m.locks, teamID)
	return nil
}

func (m *memoryNotifications) Add(_ context.Context, teamID, recipient string) error {
	m.nextID++
	m.rows = append(m.rows, &repository.PendingNotification{ID: m.nextID, TeamID: teamID, Recipient: recipient})
	return nil
}

func (m *memoryNotifications) List(_ context.Context, teamID string) ([]*repository.PendingNotification, error) {
	var res []*repository.PendingNotification
	for _, row := range m.rows {
		if row.TeamID == teamID {
			res = append(res, row)
		}
	}
	return res, nil
}

func (m *memoryNotifications) Delete(_ context.Context, teamID, recipient string) (int64, error) {
	return m.remove(func(row *repository.PendingNotification) bool {
		return row.TeamID == teamID && row.Recipient == recipient
	}), nil
}

func (m *memoryNotifications) DeleteUpTo(_ context.Context, teamID string, recipients []string, maxID int64) (int64, error) {
	return m.remove(func(row *repository.PendingNotification) bool {
		return row.TeamID == teamID && row.ID <= maxID && slices.Contains(recipients, row.Recipient)
	}), nil
}

func (m *memoryNotifications) remove(match func(*repository.PendingNotification) bool) int64 {
	before := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, match)
	return int64(before - len(m.rows))
}

func (m *memoryNotifications) recipients(teamID string) []string {
	var res []string
	for _, row := range m.rows {
		if row.TeamID == teamID {
			res = append(res, row.Recipient)
		}
	}
	return res
}

var testLinks = SiteLinks{
	Prefix:          "buoy",
	SiteName:        "Buoy Test",
	ServerName:      "www.Example.org",
	AdminURL:        "https://example.org/wp-admin/",
	HomeURL:         "https://example.org/",
	RegistrationURL: "https://example.org/register",
	FromLocal:       "buoy",
}
