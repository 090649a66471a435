package extraction

import "strings"

// orderedSet 大小写不敏感去重、保持插入顺序的字符串集合，
// 保证同一输入的输出顺序稳定
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}}
}

func (s *orderedSet) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	key := strings.ToUpper(value)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, value)
}

func (s *orderedSet) values() []string {
	return s.items
}

func (s *orderedSet) len() int {
	return len(s.items)
}
