package track

import "strings"

var tokenKinds = map[string]Kind{
	"s": Straight, "w": Straight, "straight": Straight,
	"l": Left, "a": Left, "left": Left,
	"r": Right, "d": Right, "right": Right,
}

// ParseToken maps a section token (or one of its keyboard aliases) to a Kind.
func ParseToken(position int, token string) (Kind, error) {
	k, ok := tokenKinds[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, &InvalidTokenError{Position: position, Token: token}
	}
	return k, nil
}
