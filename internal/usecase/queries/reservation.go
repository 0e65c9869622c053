package queries

import (
	"context"

	"courtbook/internal/domain/member"
	"courtbook/internal/pkg/errs"

	"github.com/google/uuid"
)

const defaultListLimit = 50

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := member.NewRole(actorRole)
	if err != nil {
		return nil, errs.Wrap(err, "actor role is inconsistent")
	}
	// Members only see their own bookings; report not-found instead of
	// confirming another member's reservation exists.
	if view.MemberID != actorID && !role.CanManageOthers() {
		return nil, errs.Mark(errs.New("reservation belongs to another member"), errs.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return q.store.FindByMemberID(ctx, memberID, int32(limit))
}
