package risk

import (
	"fmt"
	"time"

	"github.com/tradegate/pretrade/internal/model"
)

// Pre-trade validation checks. Each is a pure function of instrument
// metadata and order fields returning an empty string on pass, or the
// specific denial reason on failure.

// CheckPrice validates a price against the instrument's precision, and
// positivity for non-option instruments. A nil price passes.
func CheckPrice(instrument *model.Instrument, price *model.Price) string {
	if price == nil {
		return ""
	}
	if price.Precision() > instrument.PricePrecision {
		return fmt.Sprintf(
			"price %s invalid (precision %d > %d)",
			price, price.Precision(), instrument.PricePrecision,
		)
	}
	if instrument.AssetClass != model.AssetClassOption && !price.IsPositive() {
		return fmt.Sprintf("price %s invalid (<= 0)", price)
	}
	return ""
}

// CheckTriggerPrice validates a trigger price with the same rules as
// CheckPrice, prefixing failures with "trigger".
func CheckTriggerPrice(instrument *model.Instrument, price *model.Price) string {
	if msg := CheckPrice(instrument, price); msg != "" {
		return "trigger " + msg
	}
	return ""
}

// CheckQuantity validates a quantity against the instrument's size
// precision and min/max bounds. Absent bounds are unconstrained. A nil
// quantity passes.
func CheckQuantity(instrument *model.Instrument, quantity *model.Quantity) string {
	if quantity == nil {
		return ""
	}
	if quantity.Precision() > instrument.SizePrecision {
		return fmt.Sprintf(
			"quantity %s invalid (precision %d > %d)",
			quantity, quantity.Precision(), instrument.SizePrecision,
		)
	}
	if instrument.MaxQuantity != nil && quantity.GreaterThan(*instrument.MaxQuantity) {
		return fmt.Sprintf(
			"quantity %s invalid (> maximum trade size of %s)",
			quantity, instrument.MaxQuantity,
		)
	}
	if instrument.MinQuantity != nil && quantity.LessThan(*instrument.MinQuantity) {
		return fmt.Sprintf(
			"quantity %s invalid (< minimum trade size of %s)",
			quantity, instrument.MinQuantity,
		)
	}
	return ""
}

// CheckGTDExpiry validates that a GTD order's expire time is still in
// the future. Non-GTD orders pass.
func CheckGTDExpiry(order *model.Order, nowNs int64) string {
	if order.TimeInForce != model.TimeInForceGTD {
		return ""
	}
	if order.ExpireTimeNs <= nowNs {
		return fmt.Sprintf(
			"GTD %s already past",
			time.Unix(0, order.ExpireTimeNs).UTC().Format(time.RFC3339),
		)
	}
	return ""
}
