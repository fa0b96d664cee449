package model

// Position is a minimal read model of an open position, sufficient for
// reduce-only validation and the portfolio's net-exposure queries.
type Position struct {
	ID           PositionID
	InstrumentID InstrumentID
	Side         PositionSide
	Quantity     Quantity
}
