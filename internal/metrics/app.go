package metrics

// Process-wide counters for the admin back-office.
var (
	OrderTransitions Counter
	StockRejections  Counter
	StockAdjustments Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"order_transitions": OrderTransitions.Load(),
		"stock_rejections":  StockRejections.Load(),
		"stock_adjustments": StockAdjustments.Load(),
	}
}
