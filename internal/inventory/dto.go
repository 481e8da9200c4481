package inventory

type PositionsResponse struct {
	LowStockThreshold int64      `json:"low_stock_threshold"`
	Positions         []Position `json:"positions"`
}
