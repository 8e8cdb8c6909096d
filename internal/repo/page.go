package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-api/internal/domain"
)

// fetchPage runs q, which must filter on "id >= @cursor", order by id
// ascending, and end in "LIMIT @limit_plus_one". One extra row is read so
// the next cursor can be derived without a COUNT query.
func fetchPage[T any](
	ctx context.Context,
	conn db,
	q string,
	args pgx.NamedArgs,
	p domain.PageParams,
	scan func(scanner) (T, error),
	idOf func(T) int64,
) (domain.Page[T], error) {
	if args == nil {
		args = pgx.NamedArgs{}
	}
	args["cursor"] = p.Cursor
	args["limit_plus_one"] = p.Limit + 1

	rows, err := conn.Query(ctx, q, args)
	if err != nil {
		return domain.Page[T]{}, err
	}
	items, err := collect(rows, scan)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("fetchPage: %w", err)
	}
	return domain.SplitPage(items, p.Limit, idOf), nil
}
