//go:build unit || e2e

package builder

import (
	"time"

	reqdto "courtbook/internal/handler/dto/request"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type WaitlistBuilder struct {
	EntryID    uuid.UUID
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	SlotStart  time.Time
	Status     string
	CreatedAt  time.Time
	NotifiedAt *time.Time
}

func NewWaitlistBuilder() *WaitlistBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &WaitlistBuilder{
		EntryID:    uuid.New(),
		ResourceID: uuid.New(),
		MemberID:   uuid.New(),
		SlotStart:  now.Add(24 * time.Hour).Truncate(time.Hour),
		Status:     "pending",
		CreatedAt:  now,
	}
}

func (b *WaitlistBuilder) BuildJoinRequestDTO() reqdto.JoinWaitlistRequest {
	return reqdto.JoinWaitlistRequest{
		ResourceID:      b.ResourceID,
		TargetSlotStart: b.SlotStart,
	}
}

func (b *WaitlistBuilder) BuildSnapshot() *shared.WaitlistSnapshot {
	return &shared.WaitlistSnapshot{
		ID:         b.EntryID,
		ResourceID: b.ResourceID,
		MemberID:   b.MemberID,
		SlotStart:  b.SlotStart,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		NotifiedAt: b.NotifiedAt,
	}
}

func (b *WaitlistBuilder) WithResourceID(id uuid.UUID) *WaitlistBuilder {
	b.ResourceID = id
	return b
}

func (b *WaitlistBuilder) WithSlotStart(start time.Time) *WaitlistBuilder {
	b.SlotStart = start
	return b
}

func (b *WaitlistBuilder) WithMemberID(id uuid.UUID) *WaitlistBuilder {
	b.MemberID = id
	return b
}

func (b *WaitlistBuilder) AsNotified(at time.Time) *WaitlistBuilder {
	b.Status = "notified"
	b.NotifiedAt = &at
	return b
}
