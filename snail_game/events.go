package snail_game

// SnailTouched is emitted once, when the trigger fires and the LP account
// is frozen for good.
type SnailTouched struct {
	CurrentMarketCap  uint64
	RequiredMarketCap uint64
}

func (SnailTouched) EventName() string { return "snail_touched" }

func (e SnailTouched) EventFields() map[string]interface{} {
	return map[string]interface{}{
		"current_market_cap":  e.CurrentMarketCap,
		"required_market_cap": e.RequiredMarketCap,
	}
}
