package stats

// PitcherStats is a pitcher's line over the supplied records.
//
// RA is not a true runs-allowed count: it is the sum of RBIs credited on plate
// appearances charged to this pitcher, and ERA is derived from it. Every
// outcome of a plate appearance goes to the single pitcher recorded on it;
// there is no model of mid-at-bat changes or inherited runners.
type PitcherStats struct {
	PitcherID int64   `json:"pitcher_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BF        int     `json:"bf"`
	AB        int     `json:"ab"`
	H         int     `json:"h"`
	BB        int     `json:"bb"`
	HBP       int     `json:"hbp"`
	SO        int     `json:"so"`
	HR        int     `json:"hr"`
	SF        int     `json:"sf"`
	Outs      int     `json:"outs"`
	IP        string  `json:"ip"`
	RA        int     `json:"ra"`
	ERA       float64 `json:"era"`
}

type pitcherAccumulator struct {
	firstName    string
	lastName     string
	battersFaced int
	atBats       int
	hits         int
	walks        int
	hitByPitch   int
	strikeouts   int
	homeRuns     int
	sacFlies     int
	outs         int
	runsAllowed  int
}

func (a *pitcherAccumulator) add(c Contribution, rbis int) {
	a.battersFaced++
	if c.IsAtBat {
		a.atBats++
	}
	if c.IsHit {
		a.hits++
	}
	if c.IsHomeRun {
		a.homeRuns++
	}
	if c.IsWalk {
		a.walks++
	}
	if c.IsHitByPitch {
		a.hitByPitch++
	}
	if c.IsStrikeout {
		a.strikeouts++
	}
	if c.IsSacFly {
		a.sacFlies++
	}
	if c.CountsAsOut {
		a.outs++
	}
	a.runsAllowed += rbis
}

func (a *pitcherAccumulator) stats(id int64) PitcherStats {
	return PitcherStats{
		PitcherID: id,
		FirstName: a.firstName,
		LastName:  a.lastName,
		BF:        a.battersFaced,
		AB:        a.atBats,
		H:         a.hits,
		BB:        a.walks,
		HBP:       a.hitByPitch,
		SO:        a.strikeouts,
		HR:        a.homeRuns,
		SF:        a.sacFlies,
		Outs:      a.outs,
		IP:        InningsPitched(a.outs),
		RA:        a.runsAllowed,
		ERA:       EarnedRunAverage(a.runsAllowed, a.outs),
	}
}

// ComputePitching groups records by pitcher of record, skipping records that
// have none, and returns one line per pitcher in first-appearance order.
func ComputePitching(records []PlateAppearance) ([]PitcherStats, error) {
	acc := make(map[int64]*pitcherAccumulator)
	order := make([]int64, 0)

	for _, pa := range records {
		c, err := Classify(pa.Result)
		if err != nil {
			return nil, err
		}
		if pa.PitcherID == nil {
			continue
		}
		id := *pa.PitcherID
		a, ok := acc[id]
		if !ok {
			a = &pitcherAccumulator{firstName: pa.PitcherFirstName, lastName: pa.PitcherLastName}
			acc[id] = a
			order = append(order, id)
		}
		a.add(c, pa.RBIs)
	}

	out := make([]PitcherStats, 0, len(order))
	for _, id := range order {
		out = append(out, acc[id].stats(id))
	}
	return out, nil
}
