package model

// QuoteTick is the latest top-of-book quote for an instrument.
type QuoteTick struct {
	InstrumentID InstrumentID
	BidPrice     Price
	AskPrice     Price
	BidSize      Quantity
	AskSize      Quantity
	TsEvent      int64
}

// TradeTick is the latest trade print for an instrument.
type TradeTick struct {
	InstrumentID InstrumentID
	Price        Price
	Size         Quantity
	TsEvent      int64
}
