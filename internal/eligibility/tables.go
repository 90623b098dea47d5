package eligibility

// Tables is one immutable snapshot of the government-published PTZ
// reference data. A regulatory update replaces the whole snapshot; no value
// in here is ever derived or interpolated.
type Tables struct {
	Version string

	// incomeCeilings caps annual reference income per zone and household
	// size (1..8; larger households use the 8-person bracket).
	incomeCeilings map[Zone][8]int

	// incomeBrackets holds the four cumulative sub-thresholds per zone that
	// split eligible incomes into brackets 1..4. The bracket boundary is
	// inclusive on the lower side.
	incomeBrackets map[Zone][4]int

	// quotas maps income bracket 1..4 to the financeable percentage.
	individualQuotas [4]int
	collectiveQuotas [4]int

	// costCeilings caps the project cost per zone and household size
	// (1..5; the 5-person bracket applies to all larger households).
	costCeilings map[Zone][5]int
}

// Tables2025 returns the "PTZ 2025" snapshot.
func Tables2025() *Tables {
	return &Tables{
		Version: "PTZ 2025",
		incomeCeilings: map[Zone][8]int{
			ZoneA:  {49000, 73500, 88200, 102900, 117600, 132300, 147000, 161700},
			ZoneB1: {34500, 51750, 62100, 72450, 82800, 93150, 103500, 113850},
			ZoneB2: {31500, 47250, 56700, 66150, 75600, 85050, 94500, 103950},
			ZoneC:  {28500, 42750, 51300, 59850, 68400, 76950, 85500, 94050},
		},
		incomeBrackets: map[Zone][4]int{
			ZoneA:  {25000, 31000, 37000, 49000},
			ZoneB1: {21500, 26000, 30000, 34500},
			ZoneB2: {18000, 22500, 27000, 31500},
			ZoneC:  {15000, 19500, 24000, 28500},
		},
		individualQuotas: [4]int{30, 20, 20, 10},
		collectiveQuotas: [4]int{50, 40, 40, 20},
		costCeilings: map[Zone][5]int{
			ZoneA:  {150000, 225000, 270000, 315000, 360000},
			ZoneB1: {135000, 202500, 243000, 283500, 324000},
			ZoneB2: {110000, 165000, 198000, 231000, 264000},
			ZoneC:  {100000, 150000, 180000, 210000, 240000},
		},
	}
}

// IncomeCeiling returns the maximum eligible income for a zone and household
// size. Sizes above 8 use the 8-person bracket.
func (t *Tables) IncomeCeiling(zone Zone, householdSize int) (int, bool) {
	row, ok := t.incomeCeilings[zone]
	if !ok {
		return 0, false
	}
	return row[clamp(householdSize, 8)-1], true
}

// BracketThresholds returns the four sub-thresholds for a zone.
func (t *Tables) BracketThresholds(zone Zone) ([4]int, bool) {
	row, ok := t.incomeBrackets[zone]
	return row, ok
}

// Quota returns the financeable percentage for a housing type and bracket
// (1..4).
func (t *Tables) Quota(housing HousingType, bracket int) (int, bool) {
	if bracket < 1 || bracket > 4 {
		return 0, false
	}
	switch housing {
	case HousingIndividual:
		return t.individualQuotas[bracket-1], true
	case HousingCollective:
		return t.collectiveQuotas[bracket-1], true
	default:
		return 0, false
	}
}

// CostCeiling returns the maximum project cost for a zone and household
// size. Ceilings are tabulated up to 5 occupants; the 5-person bracket
// applies to all larger households.
func (t *Tables) CostCeiling(zone Zone, householdSize int) (int, bool) {
	row, ok := t.costCeilings[zone]
	if !ok {
		return 0, false
	}
	return row[clamp(householdSize, 5)-1], true
}

func clamp(size, max int) int {
	if size < 1 {
		return 1
	}
	if size > max {
		return max
	}
	return size
}
