package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/buoy-notify/internal/mail"
	"github.com/yakoovad/buoy-notify/internal/metrics"
	"github.com/yakoovad/buoy-notify/internal/repository"
	"github.com/yakoovad/buoy-notify/internal/sms"
	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

// AlertService fans a published alert out to the confirmed members of every
// team it was sent to.
type AlertService struct {
	alerts repository.AlertRepository
	teams  repository.TeamRepository
	users  repository.UserRepository
	mailer mail.Mailer

	links SiteLinks
}

func NewAlertService(links SiteLinks) *AlertService {
	return &AlertService{links: links}
}

// OnAlertPublished emails every confirmed member of every alert team, once per
// team, and collects their SMS gateway addresses into a single batched SMS
// that is dispatched after all teams have been processed.
func (a *AlertService) OnAlertPublished(ctx context.Context, alertID string) *Error {
	l := logger.FromContext(ctx).With(zap.String("alert_id", alertID))

	alert, err := a.alerts.Get(ctx, alertID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("alert not found")
		return NewError(ErrorCodeNotFound, "alert not found")
	}
	if err != nil {
		l.Error("failed to get alert", zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get alert")
	}

	teamIDs, err := a.alerts.GetTeams(ctx, alertID)
	if err != nil {
		l.Error("failed to get alert teams", zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get alert teams")
	}

	repoAlerter, err := a.users.Get(ctx, alert.AuthorID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("alerter not found", zap.String("author_id", alert.AuthorID))
		return NewError(ErrorCodeNotFound, "alerter not found")
	}
	if err != nil {
		l.Error("failed to get alerter", zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get alerter")
	}
	alerter := toModelUser(repoAlerter)

	m := toModelAlert(alert, teamIDs)
	reviewLink := a.links.AlertReviewURL(m.Hash)
	shortLink := a.links.AlertShortURL(m.ShortHash())
	headers := []mail.Header{{Name: "From", Value: a.links.FromHeader(alerter.DisplayName)}}

	batch := sms.NewMessage()
	batch.SetSender(alerter.DisplayName, a.links.FromAddress())
	batch.SetContent(shortLink + " " + m.Title)

	l.Info("fanning out alert", zap.Int("teams", len(m.TeamIDs)))

	for _, teamID := range m.TeamIDs {
		members, err := a.teams.GetConfirmedMembers(ctx, teamID)
		if err != nil {
			l.Warn("failed to get confirmed members", zap.String("team_id", teamID), zap.Error(err))
			continue
		}

		for _, userID := range members {
			repoResponder, err := a.users.Get(ctx, userID)
			if err != nil {
				l.Warn("failed to resolve responder", zap.String("team_id", teamID), zap.String("user_id", userID), zap.Error(err))
				continue
			}
			responder := toModelUser(repoResponder)

			msg := &mail.Message{
				To:      []string{responder.Email},
				Subject: m.Title,
				Body:    reviewLink,
				Headers: headers,
			}
			if err = a.mailer.Send(ctx, msg); err != nil {
				l.Warn("failed to send alert email", zap.String("user_id", userID), zap.Error(err))
				metrics.IncSendFailure(metrics.ChannelEmail)
			} else {
				metrics.IncAlertEmail()
			}

			smsAddr, err := sms.Address(responder.SMSPhone, responder.SMSProvider)
			if err != nil {
				l.Warn("skipping sms for responder", zap.String("user_id", userID), zap.Error(err))
				continue
			}
			batch.AddAddressee(smsAddr)
		}
	}

	if len(batch.Addressees()) == 0 {
		return nil
	}

	if err = batch.Send(ctx, a.mailer); err != nil {
		l.Warn("failed to send sms batch", zap.Int("addressees", len(batch.Addressees())), zap.Error(err))
		metrics.IncSendFailure(metrics.ChannelSMS)
		return nil
	}
	metrics.IncSMSBatch()
	l.Debug("sms batch sent", zap.Int("addressees", len(batch.Addressees())))

	return nil
}

func (a *AlertService) WithAlertRepo(r repository.AlertRepository) *AlertService {
	a.alerts = r
	return a
}

func (a *AlertService) WithTeamRepo(r repository.TeamRepository) *AlertService {
	a.teams = r
	return a
}

func (a *AlertService) WithUserRepo(r repository.UserRepository) *AlertService {
	a.users = r
	return a
}

func (a *AlertService) WithMailer(m mail.Mailer) *AlertService {
	a.mailer = m
	return a
}
