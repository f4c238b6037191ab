package classify

import "testing"

func TestMatchExact(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"identical chinese", "可回收垃圾", "可回收垃圾"},
		{"case insensitive", "Recyclable", "recyclable"},
		{"trimmed", "  湿垃圾 ", "湿垃圾"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Match(tc.a, tc.b)
			if !verdict.Exact {
				t.Fatalf("Match(%q, %q).Exact = false, want true", tc.a, tc.b)
			}
		})
	}
}

func TestMatchSameGroup(t *testing.T) {
	cases := []struct {
		name      string
		a, b      string
		sameGroup bool
	}{
		{"plastic vs recyclable", "塑料瓶", "可回收垃圾", true},
		{"battery vs hazardous", "电池", "有害垃圾", true},
		{"food scraps vs wet", "食物残渣", "湿垃圾", true},
		{"cigarette vs dry", "烟蒂", "干垃圾", true},
		{"battery vs recyclable", "电池", "可回收垃圾", false},
		{"english recyclable vs chinese", "recyclable", "可回收垃圾", true},
		{"unrelated text", "银河系", "可回收垃圾", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Match(tc.a, tc.b)
			if verdict.SameGroup != tc.sameGroup {
				t.Fatalf("Match(%q, %q).SameGroup = %v, want %v", tc.a, tc.b, verdict.SameGroup, tc.sameGroup)
			}
		})
	}
}

func TestMatchSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"塑料瓶", "可回收垃圾"},
		{"电池", "湿垃圾"},
		{"recyclable", "纸张"},
		{"干垃圾", "烟蒂"},
	}
	for _, pair := range pairs {
		forward := Match(pair[0], pair[1])
		backward := Match(pair[1], pair[0])
		if forward != backward {
			t.Fatalf("Match(%q, %q) = %+v but Match(%q, %q) = %+v", pair[0], pair[1], forward, pair[1], pair[0], backward)
		}
	}
}

func TestGroupsOfMultipleGroups(t *testing.T) {
	// A verbose label can touch keywords from more than one group; it then
	// belongs to all of them.
	groups := GroupsOf("玻璃灯泡")
	if len(groups) < 2 {
		t.Fatalf("GroupsOf(%q) = %v, want membership in at least two groups", "玻璃灯泡", groups)
	}
}

func TestGroupsOfEmpty(t *testing.T) {
	if groups := GroupsOf("   "); groups != nil {
		t.Fatalf("GroupsOf(blank) = %v, want nil", groups)
	}
}

func TestGroupsOfContainmentBothWays(t *testing.T) {
	// A terse label that is a substring of a keyword resolves.
	if groups := GroupsOf("回收"); len(groups) == 0 {
		t.Fatalf("terse label %q did not resolve to any group", "回收")
	}
	// A verbose label containing a keyword resolves too.
	if groups := GroupsOf("一个塑料材质的瓶子"); len(groups) == 0 {
		t.Fatalf("verbose label containing %q did not resolve to any group", "塑料")
	}
}
