package proto

// FeeTypeCount is a fee item count grouped by fee type.
type FeeTypeCount struct {
	FeeTypeID   int64  `db:"fee_type_id"`
	FeeTypeName string `db:"fee_type_name"`
	Count       int64  `db:"count"`
}

// FeeItemStats are aggregates over non-deleted fee items in scope.
type FeeItemStats struct {
	Total          int64
	ByType         []FeeTypeCount
	AvgAmountPaise float64
	MinAmountPaise int64
	MaxAmountPaise int64
}
