package classify

import "strings"

// Group is one of the four fixed waste classes used for partial-credit
// scoring.
type Group int

const (
	GroupRecyclable Group = iota
	GroupHazardous
	GroupWet
	GroupDry
)

func (g Group) String() string {
	switch g {
	case GroupRecyclable:
		return "recyclable"
	case GroupHazardous:
		return "hazardous"
	case GroupWet:
		return "wet"
	case GroupDry:
		return "dry"
	default:
		return "unknown"
	}
}

// groupKeywords maps each group to its synonym and example tokens. Bilingual
// terms and common item examples are deliberate: detected labels range from
// terse standard names to verbose item descriptions.
var groupKeywords = map[Group][]string{
	GroupRecyclable: {"可回收垃圾", "recyclable", "塑料", "纸类", "金属", "玻璃", "纸张", "瓶子"},
	GroupHazardous:  {"有害垃圾", "hazardous", "电池", "药品", "化学品", "灯泡", "温度计"},
	GroupWet:        {"湿垃圾", "wet", "厨余垃圾", "食物残渣", "有机垃圾", "果皮", "剩菜", "食物"},
	GroupDry:        {"干垃圾", "dry", "其他垃圾", "一般垃圾", "烟蒂", "尘土", "陶瓷"},
}

// MatchResult is the verdict of comparing two category labels.
type MatchResult struct {
	Exact     bool
	SameGroup bool
}

// Match compares two category labels. Exact is case-insensitive trimmed
// equality; SameGroup is true when both labels resolve to at least one common
// group. Symmetric in its arguments.
func Match(a, b string) MatchResult {
	return MatchResult{
		Exact:     strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)),
		SameGroup: shareGroup(GroupsOf(a), GroupsOf(b)),
	}
}

// GroupsOf resolves a label to every group whose keyword set it touches. A
// label matching keywords in two groups belongs to both; no group takes
// priority. Containment is checked in both directions so that terse labels
// match verbose keywords and vice versa.
func GroupsOf(label string) []Group {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return nil
	}
	var groups []Group
	for group := GroupRecyclable; group <= GroupDry; group++ {
		for _, keyword := range groupKeywords[group] {
			kw := strings.ToLower(keyword)
			if strings.Contains(normalized, kw) || strings.Contains(kw, normalized) {
				groups = append(groups, group)
				break
			}
		}
	}
	return groups
}

func shareGroup(a, b []Group) bool {
	for _, ga := range a {
		for _, gb := range b {
			if ga == gb {
				return true
			}
		}
	}
	return false
}
