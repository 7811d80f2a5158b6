package engine

func max32(x, y int32) int32 {
	if x > y {
		return x
	}
	return y
}

func min32(x, y int32) int32 {
	if x < y {
		return x
	}
	return y
}

// perspective turns a white-positive score into the maximizing side's view.
func perspective(score int32, maximizing bool) int32 {
	if maximizing {
		return score
	}
	return -score
}

// sign is +1 for white and -1 for black.
func sign(s Side) int32 {
	if s == White {
		return 1
	}
	return -1
}
