package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/yakoovad/buoy-notify/internal/event"
	"github.com/yakoovad/buoy-notify/internal/mail"
	"github.com/yakoovad/buoy-notify/internal/metrics"
	"github.com/yakoovad/buoy-notify/internal/model"
	"github.com/yakoovad/buoy-notify/internal/repository"
	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

const systemPurpose = "Buoy is a community-based crisis response system. It is designed to connect people in need " +
	"with trusted friends, family, and other nearby allies who can help. We believe that in situations where " +
	"traditional emergency services are not available, reliable, trustworthy, or sufficient, communities can " +
	"come together to aid each other in times of need."

// InviteService sends the invitations queued for a team once it is visible.
type InviteService struct {
	queue  *QueueService
	teams  repository.TeamRepository
	users  repository.UserRepository
	mailer mail.Mailer

	links SiteLinks
}

func NewInviteService(links SiteLinks) *InviteService {
	return &InviteService{links: links}
}

// ProcessTeamInvites drains the team's queue and notifies every recipient.
// Email addresses get an external invitation, account references get a
// membership notice. Unknown accounts are skipped and a failed send does not
// stop the remaining recipients.
func (s *InviteService) ProcessTeamInvites(ctx context.Context, teamID string) *Error {
	l := logger.FromContext(ctx).With(zap.String("team_id", teamID))

	team, inviter, serr := s.resolveTeam(ctx, teamID)
	if serr != nil {
		return serr
	}

	recipients, serr := s.queue.ListUniqueAndDrain(ctx, teamID)
	if serr != nil {
		return serr
	}

	l.Info("processing team invites", zap.Int("recipients", len(recipients)))

	for _, recipient := range recipients {
		if model.IsEmail(recipient) {
			if err := s.sendExternalInvite(ctx, inviter, recipient); err != nil {
				l.Warn("failed to send external invite", zap.String("email", recipient), zap.Error(err))
				metrics.IncSendFailure(metrics.ChannelEmail)
			}
			continue
		}

		repoUser, err := s.users.Get(ctx, recipient)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				l.Warn("failed to resolve invited user", zap.String("user_id", recipient), zap.Error(err))
			} else {
				l.Debug("invited user does not exist, skipping", zap.String("user_id", recipient))
			}
			continue
		}

		if err = s.sendMemberNotice(ctx, team, inviter, toModelUser(repoUser)); err != nil {
			l.Warn("failed to send member notice", zap.String("user_id", recipient), zap.Error(err))
			metrics.IncSendFailure(metrics.ChannelEmail)
		}
	}

	return nil
}

// SendExternalInvite invites someone without an account to register and join team.
func (s *InviteService) SendExternalInvite(ctx context.Context, team *model.Team, email string) *Error {
	l := logger.FromContext(ctx)

	repoInviter, err := s.users.Get(ctx, team.AuthorID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("team author not found", zap.String("team_id", team.ID), zap.String("author_id", team.AuthorID))
		return NewError(ErrorCodeNotFound, "team author not found")
	}
	if err != nil {
		l.Error("failed to get team author", zap.String("team_id", team.ID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to get team author")
	}

	if err = s.sendExternalInvite(ctx, toModelUser(repoInviter), email); err != nil {
		l.Error("failed to send external invite", zap.String("team_id", team.ID), zap.Error(err))
		metrics.IncSendFailure(metrics.ChannelEmail)
		return NewError(ErrorCodeUnspecified, "failed to send external invite")
	}
	return nil
}

// MemberAdded queues the new member when asked to, then sends right away if
// the team is already visible. Nothing is queued for an unknown team.
func (s *InviteService) MemberAdded(ctx context.Context, e event.MemberAdded) *Error {
	team, serr := s.getTeam(ctx, e.TeamID)
	if serr != nil {
		return serr
	}

	if e.Notify {
		if serr = s.queue.Enqueue(ctx, e.TeamID, e.Recipient); serr != nil {
			return serr
		}
	}

	if !team.IsVisible() {
		return nil
	}
	return s.ProcessTeamInvites(ctx, e.TeamID)
}

// MemberRemoved drops any invitation still queued for the removed member.
func (s *InviteService) MemberRemoved(ctx context.Context, e event.MemberRemoved) *Error {
	return s.queue.Cancel(ctx, e.TeamID, e.Recipient)
}

func (s *InviteService) sendExternalInvite(ctx context.Context, inviter *model.User, email string) error {
	subject := fmt.Sprintf("%s invites you to join %s crisis response team on %s!",
		inviter.DisplayName, inviter.Pronoun(), s.links.SiteName)

	body := systemPurpose + "\n\n" +
		fmt.Sprintf("%s wants you to join %s crisis response team.", inviter.DisplayName, inviter.Pronoun()) + "\n\n" +
		"To join, sign up for an account here:" + "\n\n" +
		s.links.RegistrationURL

	if err := s.mailer.Send(ctx, &mail.Message{To: []string{email}, Subject: subject, Body: body}); err != nil {
		return err
	}
	metrics.IncInvite(metrics.InviteKindExternal)
	return nil
}

func (s *InviteService) sendMemberNotice(ctx context.Context, team *model.Team, inviter, member *model.User) error {
	subject := fmt.Sprintf("%s wants you to join %s crisis response team.", inviter.DisplayName, inviter.Pronoun())

	msg := &mail.Message{
		To:      []string{member.Email},
		Subject: subject,
		Body:    s.links.TeamMembershipURL(),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return err
	}

	metrics.IncInvite(metrics.InviteKindMember)
	logger.FromContext(ctx).Debug("member notice sent", zap.String("team_id", team.ID), zap.String("user_id", member.ID))
	return nil
}

func (s *InviteService) getTeam(ctx context.Context, teamID string) (*model.Team, *Error) {
	l := logger.FromContext(ctx)

	repoTeam, err := s.teams.Get(ctx, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn("team not found", zap.String("team_id", teamID))
		return nil, NewError(ErrorCodeNotFound, "team not found")
	}
	if err != nil {
		l.Error("failed to get team", zap.String("team_id", teamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get team")
	}
	return toModelTeam(repoTeam), nil
}

func (s *InviteService) resolveTeam(ctx context.Context, teamID string) (*model.Team, *model.User, *Error) {
	team, serr := s.getTeam(ctx, teamID)
	if serr != nil {
		return nil, nil, serr
	}

	repoInviter, err := s.users.Get(ctx, team.AuthorID)
	if errors.Is(err, repository.ErrNotFound) {
		logger.FromContext(ctx).Warn("team author not found", zap.String("team_id", teamID), zap.String("author_id", team.AuthorID))
		return nil, nil, NewError(ErrorCodeNotFound, "team author not found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get team author", zap.String("team_id", teamID), zap.Error(err))
		return nil, nil, NewError(ErrorCodeUnspecified, "failed to get team author")
	}
	return team, toModelUser(repoInviter), nil
}

func (s *InviteService) WithQueue(q *QueueService) *InviteService {
	s.queue = q
	return s
}

func (s *InviteService) WithTeamRepo(r repository.TeamRepository) *InviteService {
	s.teams = r
	return s
}

func (s *InviteService) WithUserRepo(r repository.UserRepository) *InviteService {
	s.users = r
	return s
}

func (s *InviteService) WithMailer(m mail.Mailer) *InviteService {
	s.mailer = m
	return s
}
