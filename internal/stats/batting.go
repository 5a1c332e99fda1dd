package stats

// PlayerStats is a batter's line over whatever records the caller supplied
// (one game, or a whole season). Rate fields are derived from the counters on
// every computation and never stored on their own.
type PlayerStats struct {
	PlayerID  int64   `json:"player_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	AB        int     `json:"ab"`
	H         int     `json:"h"`
	BB        int     `json:"bb"`
	HBP       int     `json:"hbp"`
	SF        int     `json:"sf"`
	TB        int     `json:"tb"`
	AVG       float64 `json:"avg"`
	OBP       float64 `json:"obp"`
	SLG       float64 `json:"slg"`
	OPS       float64 `json:"ops"`
}

type batterAccumulator struct {
	firstName  string
	lastName   string
	atBats     int
	hits       int
	walks      int
	hitByPitch int
	sacFlies   int
	totalBases int
}

func (a *batterAccumulator) add(c Contribution) {
	if c.IsAtBat {
		a.atBats++
	}
	if c.IsHit {
		a.hits++
	}
	if c.IsWalk {
		a.walks++
	}
	if c.IsHitByPitch {
		a.hitByPitch++
	}
	if c.IsSacFly {
		a.sacFlies++
	}
	a.totalBases += c.TotalBases
}

func (a *batterAccumulator) stats(id int64) PlayerStats {
	obp := SafeDivide(a.hits+a.walks+a.hitByPitch, a.atBats+a.walks+a.hitByPitch+a.sacFlies)
	slg := SafeDivide(a.totalBases, a.atBats)
	return PlayerStats{
		PlayerID:  id,
		FirstName: a.firstName,
		LastName:  a.lastName,
		AB:        a.atBats,
		H:         a.hits,
		BB:        a.walks,
		HBP:       a.hitByPitch,
		SF:        a.sacFlies,
		TB:        a.totalBases,
		AVG:       SafeDivide(a.hits, a.atBats),
		OBP:       obp,
		SLG:       slg,
		// ops is summed from the rounded obp and slg on purpose; published
		// box scores do the same.
		OPS: round(obp+slg, rateDecimals),
	}
}

// ComputeBatting groups records by batter and returns one line per batter in
// the order each batter first appears. The first record seen for a batter
// decides the name on the line. A record with an unknown result code aborts
// the whole computation.
func ComputeBatting(records []PlateAppearance) ([]PlayerStats, error) {
	acc := make(map[int64]*batterAccumulator)
	order := make([]int64, 0)

	for _, pa := range records {
		c, err := Classify(pa.Result)
		if err != nil {
			return nil, err
		}
		a, ok := acc[pa.BatterID]
		if !ok {
			a = &batterAccumulator{firstName: pa.BatterFirstName, lastName: pa.BatterLastName}
			acc[pa.BatterID] = a
			order = append(order, pa.BatterID)
		}
		a.add(c)
	}

	out := make([]PlayerStats, 0, len(order))
	for _, id := range order {
		out = append(out, acc[id].stats(id))
	}
	return out, nil
}
