package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	const query = `
		SELECT id, name, open_hour, close_hour, slot_granularity_min, timezone, busy_feed_url
		FROM resources
		WHERE id = $1`

	var view queries.ResourceView
	var feedURL pgtype.Text
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.OpenHour, &view.CloseHour,
		&view.SlotGranularityMin, &view.Timezone, &feedURL,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("resource not found", err, infra.KindNotFound),
				errs.ErrResourceNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	view.BusyFeedURL = pgconv.StringPtrFromPgtype(feedURL)
	return &view, nil
}
