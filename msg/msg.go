// Package msg builds the path payloads handed to the presentation layer.
package msg

import (
	"encoding/json"
	"fmt"

	"github.com/fukurin00/grid_routing_provider/routing"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type PathMsg struct {
	Found bool     `json:"found"`
	Cost  int      `json:"cost"`
	Start [2]int   `json:"start"`
	Goal  [2]int   `json:"goal"`
	Path  [][2]int `json:"path"`
}

func NewPathMsg(start, goal routing.Coord, path routing.Path) PathMsg {
	m := PathMsg{
		Found: path.Found(),
		Cost:  path.Cost(),
		Start: [2]int{start.Row, start.Col},
		Goal:  [2]int{goal.Row, goal.Col},
		Path:  make([][2]int, 0, len(path)),
	}
	for _, c := range path {
		m.Path = append(m.Path, [2]int{c.Row, c.Col})
	}
	return m
}

func (m PathMsg) Route() routing.Path {
	p := make(routing.Path, 0, len(m.Path))
	for _, c := range m.Path {
		p = append(p, routing.Coord{Row: c[0], Col: c[1]})
	}
	return p
}

// MakePathMsg encodes a path as json
func MakePathMsg(start, goal routing.Coord, path routing.Path) ([]byte, error) {
	return json.Marshal(NewPathMsg(start, goal, path))
}

func ParsePathMsg(b []byte) (PathMsg, error) {
	var m PathMsg
	err := json.Unmarshal(b, &m)
	return m, err
}

// MakePathProto encodes a path as a protobuf Struct with the same fields as the json message.
func MakePathProto(start, goal routing.Coord, path routing.Path) ([]byte, error) {
	route := make([]interface{}, 0, len(path))
	for _, c := range path {
		route = append(route, []interface{}{c.Row, c.Col})
	}
	st, err := structpb.NewStruct(map[string]interface{}{
		"found": path.Found(),
		"cost":  path.Cost(),
		"start": []interface{}{start.Row, start.Col},
		"goal":  []interface{}{goal.Row, goal.Col},
		"path":  route,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}

func ParsePathProto(b []byte) (PathMsg, error) {
	st := &structpb.Struct{}
	if err := proto.Unmarshal(b, st); err != nil {
		return PathMsg{}, err
	}
	fields := st.GetFields()
	m := PathMsg{
		Found: fields["found"].GetBoolValue(),
		Cost:  int(fields["cost"].GetNumberValue()),
	}
	var err error
	if m.Start, err = pair(fields["start"]); err != nil {
		return m, fmt.Errorf("start: %w", err)
	}
	if m.Goal, err = pair(fields["goal"]); err != nil {
		return m, fmt.Errorf("goal: %w", err)
	}
	for i, v := range fields["path"].GetListValue().GetValues() {
		c, err := pair(v)
		if err != nil {
			return m, fmt.Errorf("path[%d]: %w", i, err)
		}
		m.Path = append(m.Path, c)
	}
	if m.Path == nil {
		m.Path = [][2]int{}
	}
	return m, nil
}

func pair(v *structpb.Value) ([2]int, error) {
	vals := v.GetListValue().GetValues()
	if len(vals) != 2 {
		return [2]int{}, fmt.Errorf("want 2 values, got %d", len(vals))
	}
	return [2]int{int(vals[0].GetNumberValue()), int(vals[1].GetNumberValue())}, nil
}
