package domain

// ValidRounds are the accepted best-of lengths.
var ValidRounds = []uint{3, 5, 7, 9}

func IsValidRounds(n uint) bool {
	for _, v := range ValidRounds {
		if v == n {
			return true
		}
	}
	return false
}

// WinCondition is the number of round wins that clinches a best-of-n game.
func WinCondition(n uint) uint {
	return n/2 + 1
}
