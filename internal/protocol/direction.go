package protocol

import "fmt"

// Direction is the side of the connection a message is travelling toward.
type Direction int

const (
	ToClient Direction = iota + 1
	ToServer
)

func (d Direction) String() string {
	switch d {
	case ToClient:
		return "toclient"
	case ToServer:
		return "toserver"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts the textual form produced by String back into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "toclient":
		return ToClient, nil
	case "toserver":
		return ToServer, nil
	default:
		return 0, fmt.Errorf("unknown direction: %s", s)
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != ToClient && d != ToServer {
		return nil, fmt.Errorf("unknown direction: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
