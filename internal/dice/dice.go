package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RollResult holds the outcome of a single dice roll.
type RollResult struct {
	Total    int
	RawTotal int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	IsCrit   bool
	IsFumble bool
}

// Roll rolls count dice with the given number of sides and adds a flat bonus.
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		rolls[i] = roll
		total += roll
	}

	result := &RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// RollString rolls a dice expression like "2d6" or "1d8+3".
func RollString(expr string) (*RollResult, error) {
	count, sides, bonus, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}

	return Roll(count, sides, bonus)
}

// ParseExpression parses a "NdS" or "NdS+B" dice expression.
func ParseExpression(expr string) (count, sides, bonus int, err error) {
	parts := strings.SplitN(strings.TrimSpace(expr), "+", 2)
	if len(parts) == 2 {
		bonus, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid dice expression %q", expr)
		}
	}

	diceParts := strings.SplitN(strings.TrimSpace(parts[0]), "d", 2)
	if len(diceParts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid dice expression %q", expr)
	}

	count, err = strconv.Atoi(diceParts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice expression %q", expr)
	}

	sides, err = strconv.Atoi(diceParts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid dice expression %q", expr)
	}

	return count, sides, bonus, nil
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}
