package leaderboard

import (
	"regexp"
	"strings"

	"github.com/snakegame/leaderboard/internal/validate"
)

// Field constraints for score entries.
const (
	nicknameMinLen = 2
	nicknameMaxLen = 20
)

var (
	nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	// timePattern pins the fixed-width MM:SS format. Relaxing it would break
	// the lexicographic tiebreak in rankingOrder.
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// normalizeNickname trims surrounding whitespace before validation and
// storage.
func normalizeNickname(nickname string) string {
	return strings.TrimSpace(nickname)
}

// validateSubmit checks every field of a new submission and reports all
// violations at once.
func validateSubmit(in SubmitInput) error {
	verr := &validate.Error{}
	checkNickname(verr, in.Nickname)
	if in.Score == nil {
		verr.Add("score", "is required")
	} else {
		checkScore(verr, *in.Score)
	}
	checkTime(verr, in.Time)
	return verr.Err()
}

// validateUpdate checks only the fields present in a partial edit.
func validateUpdate(in UpdateInput) error {
	verr := &validate.Error{}
	if in.Nickname != nil {
		checkNickname(verr, *in.Nickname)
	}
	if in.Score != nil {
		checkScore(verr, *in.Score)
	}
	if in.Time != nil {
		checkTime(verr, *in.Time)
	}
	return verr.Err()
}

func checkNickname(verr *validate.Error, nickname string) {
	trimmed := normalizeNickname(nickname)
	if len(trimmed) < nicknameMinLen || len(trimmed) > nicknameMaxLen {
		verr.Add("nickname", "must be between 2 and 20 characters")
		return
	}
	if !nicknamePattern.MatchString(trimmed) {
		verr.Add("nickname", "may only contain letters, digits and underscores")
	}
}

func checkScore(verr *validate.Error, score int64) {
	if score < 0 {
		verr.Add("score", "must be zero or greater")
	}
}

func checkTime(verr *validate.Error, value string) {
	if !timePattern.MatchString(value) {
		verr.Add("time", "must match the MM:SS format")
	}
}
