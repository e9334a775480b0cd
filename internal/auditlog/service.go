package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db/models"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
	"github.com/jiaotianpharma/warehouse-backend/pkg/pagination"
)

// SystemActor is recorded when no operator identity accompanies a mutation
// and no override is configured.
const SystemActor = "system"

// Service defines operations that record and read security log entries.
type Service interface {
	// WithTx returns a service whose writes join the provided transaction,
	// so a data mutation and its audit entry commit or roll back as a pair.
	WithTx(tx *gorm.DB) Service
	Record(ctx context.Context, input RecordEntryInput) (*models.SecurityLog, error)
	List(ctx context.Context, params pagination.Params) ([]models.SecurityLog, error)
	Count(ctx context.Context) (int64, error)
}

// RecordEntryInput captures the immutable data a security log entry requires.
// Actor and IPAddress come from the request boundary; empty values fall back
// to the system identity and a simulated address.
type RecordEntryInput struct {
	Actor       string
	Action      string
	Module      string
	Description string
	Details     any
	IPAddress   string
}

type service struct {
	repo        Repository
	systemActor string
}

// NewService wires a security log service with the provided repository. The
// config supplies the fallback actor name stamped on entries recorded without
// an operator identity.
func NewService(repo Repository, cfg config.AuditConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit log repository required")
	}
	systemActor := strings.TrimSpace(cfg.SystemActor)
	if systemActor == "" {
		systemActor = SystemActor
	}
	return &service{repo: repo, systemActor: systemActor}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx), systemActor: s.systemActor}
}

func (s *service) Record(ctx context.Context, input RecordEntryInput) (*models.SecurityLog, error) {
	if strings.TrimSpace(input.Action) == "" {
		return nil, fmt.Errorf("action is required")
	}
	if strings.TrimSpace(input.Module) == "" {
		return nil, fmt.Errorf("module is required")
	}

	actor := strings.TrimSpace(input.Actor)
	if actor == "" {
		actor = s.systemActor
	}

	ip := input.IPAddress
	if ip == "" {
		ip = simulatedIP()
	}

	details, err := serializeDetails(input.Details)
	if err != nil {
		return nil, fmt.Errorf("serializing technical details: %w", err)
	}

	now := time.Now().UTC()
	entry := &models.SecurityLog{
		ID:               newEntryID(now),
		Timestamp:        now,
		Actor:            actor,
		Action:           input.Action,
		Module:           input.Module,
		IPAddress:        ip,
		Status:           enums.LogStatusForAction(input.Action),
		Description:      input.Description,
		TechnicalDetails: details,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.SecurityLog, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// newEntryID keeps the legacy time-derived "L<millis>" prefix and appends a
// uuid fragment so entries created in the same millisecond stay unique.
func newEntryID(now time.Time) string {
	return fmt.Sprintf("L%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func serializeDetails(details any) (string, error) {
	switch v := details.(type) {
	case nil:
		return "{}", nil
	case string:
		return v, nil
	case json.RawMessage:
		return string(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

// simulatedIP mirrors the legacy system: no real network layer sits behind
// the store, so the address is synthesized from the private range.
func simulatedIP() string {
	return fmt.Sprintf("192.168.1.%d", rand.Intn(255))
}
