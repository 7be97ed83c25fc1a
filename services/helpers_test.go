package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/hackfest/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryRepo is an in-memory RegistrationRepository.
type memoryRepo struct {
	mu      sync.Mutex
	records []*models.Registration
	err     error
	calls   int
	clock   func() time.Time
}

func (r *memoryRepo) Append(ctx context.Context, reg *models.Registration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.err != nil {
		return "", r.err
	}
	reg.ID = "reg-" + string(rune('a'+len(r.records)))
	if r.clock != nil {
		reg.SubmittedAt = r.clock()
	} else {
		reg.SubmittedAt = time.Now()
	}
	stored := *reg
	r.records = append(r.records, &stored)
	return reg.ID, nil
}

func (r *memoryRepo) ListAll(context.Context) ([]*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Registration, len(r.records))
	copy(out, r.records)
	return out, nil
}

// recordingMailer records every attempted message and fails the ones
// whose recipient is listed in failFor.
type recordingMailer struct {
	mu       sync.Mutex
	attempts []Message
	failFor  map[string]error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, msg)
	if err, ok := m.failFor[msg.To]; ok {
		return "", err
	}
	return "<id-" + msg.To + ">", nil
}

type stubNotifier struct {
	calls   int
	receipt *models.DeliveryReceipt
	err     error
}

func (n *stubNotifier) Notify(context.Context, *models.Registration) (*models.DeliveryReceipt, error) {
	n.calls++
	return n.receipt, n.err
}

type capturePublisher struct {
	published []*models.Registration
}

func (p *capturePublisher) PublishRegistration(reg *models.Registration) {
	p.published = append(p.published, reg)
}

var errSMTPDown = errors.New("dial tcp: connection refused")
