
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const trialBalance = `-- name: TrialBalance :one
SELECT
    COALESCE(SUM(a.value) FILTER (WHERE a.side = 'debit'), 0)::numeric AS debit_total,
    COALESCE(SUM(a.value) FILTER (WHERE a.side = 'credit'), 0)::numeric AS credit_total
FROM amounts a
JOIN entries e ON e.id = a.entry_id
WHERE ($1::text IS NULL OR e.tenant_id = $1::text)
`

type TrialBalanceRow struct {
	DebitTotal  pgtype.Numeric `json:"debit_total"`
	CreditTotal pgtype.Numeric `json:"credit_total"`
}

func (q *Queries) TrialBalance(ctx context.Context, tenantID pgtype.Text) (TrialBalanceRow, error) {
	row := q.db.QueryRow(ctx, trialBalance, tenantID)
	var i TrialBalanceRow
	err := row.Scan(&i.DebitTotal, &i.CreditTotal)
	return i, err
}
