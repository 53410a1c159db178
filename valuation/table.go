// Package valuation prices NBA draft-pick trades with a fixed pick value chart.
package valuation

const (
	// PicksPerRound is the number of selections in each draft round.
	PicksPerRound = 30
	// Rounds is the number of rounds in the draft.
	Rounds = 2
	// MaxSlot is the last overall selection in the draft.
	MaxSlot = PicksPerRound * Rounds
)

// slotValues[i] is the value of overall slot i+1. Non-increasing by slot.
var slotValues = [MaxSlot]int{
	// Round 1
	4000, 3600, 3300, 3050, 2850, 2650, 2500, 2350, 2200, 2100,
	2000, 1900, 1800, 1700, 1620, 1540, 1460, 1390, 1320, 1250,
	1190, 1130, 1070, 1010, 960, 910, 860, 820, 780, 740,
	// Round 2
	700, 660, 630, 600, 570, 540, 520, 500, 480, 460,
	440, 420, 400, 385, 370, 355, 340, 325, 310, 295,
	280, 265, 250, 240, 230, 220, 210, 200, 190, 180,
}

// Slot converts a (round, pick) pair into the overall draft slot.
// Second-round picks continue after the thirty first-round picks.
func Slot(round, pickNumber int) int {
	if round == 1 {
		return pickNumber
	}
	return pickNumber + PicksPerRound
}

// SlotValue returns the chart value of an overall slot, or 0 when the
// slot is outside 1..MaxSlot.
func SlotValue(slot int) int {
	if slot < 1 || slot > MaxSlot {
		return 0
	}
	return slotValues[slot-1]
}

// PickValue returns the chart value of a pick given by round and pick number.
func PickValue(round, pickNumber int) int {
	return SlotValue(Slot(round, pickNumber))
}
