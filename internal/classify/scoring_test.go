package classify

import (
	"reflect"
	"strings"
	"testing"
)

func TestScoreExactMatchHighConfidence(t *testing.T) {
	var engine Engine
	result := engine.Score("可回收垃圾", "可回收垃圾", 0.9, Evidence{
		Description:          strings.Repeat("透明塑料瓶，表面有标签。", 6),
		Characteristics:      []string{"透明", "塑料材质", "瓶状"},
		MaterialType:         "塑料",
		DisposalInstructions: "清空后投入可回收物桶",
	})
	if !result.Match {
		t.Fatalf("exact match graded as incorrect")
	}
	if result.Score != 100 {
		t.Fatalf("score = %d, want 100", result.Score)
	}
}

func TestScoreMismatchMidConfidence(t *testing.T) {
	var engine Engine
	result := engine.Score("有害垃圾", "湿垃圾", 0.5, Evidence{
		Description:          "小型物体",
		Characteristics:      []string{"圆柱形"},
		MaterialType:         "金属",
		DisposalInstructions: "投入有害垃圾桶",
	})
	if result.Match {
		t.Fatalf("cross-group mismatch graded as correct")
	}
	// 25 + (0.5-0.6)*15 = 23.5, rounded to 24, no bonuses apply.
	if result.Score != 24 {
		t.Fatalf("score = %d, want 24", result.Score)
	}
}

func TestScoreSameGroupPartialCredit(t *testing.T) {
	var engine Engine
	result := engine.Score("塑料瓶", "可回收垃圾", 0.6, Evidence{
		Description:          "瓶子",
		Characteristics:      []string{"瓶状"},
		MaterialType:         "塑料",
		DisposalInstructions: "投入可回收物桶",
	})
	if !result.Match {
		t.Fatalf("same-group labels graded as incorrect")
	}
	if result.Score != 75 {
		t.Fatalf("score = %d, want 75 at the confidence pivot", result.Score)
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	var engine Engine
	cases := []struct {
		name       string
		detected   string
		expected   string
		confidence float64
	}{
		{"confidence above one", "可回收垃圾", "可回收垃圾", 7.5},
		{"negative confidence", "干垃圾", "湿垃圾", -3},
		{"zero everything", "", "", 0},
		{"mismatch full confidence", "有害垃圾", "可回收垃圾", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.Score(tc.detected, tc.expected, tc.confidence, Evidence{})
			if result.Score < 0 || result.Score > 100 {
				t.Fatalf("score = %d, out of [0,100]", result.Score)
			}
		})
	}
}

func TestScoreEvidenceBonuses(t *testing.T) {
	var engine Engine
	base := engine.Score("干垃圾", "干垃圾", 0.6, Evidence{
		Characteristics: []string{"灰色"},
	})
	withEvidence := engine.Score("干垃圾", "干垃圾", 0.6, Evidence{
		Description:     strings.Repeat("一块沾了灰尘的陶瓷碎片。", 5),
		Characteristics: []string{"灰色", "坚硬", "碎片状"},
	})
	if got, want := withEvidence.Score-base.Score, characteristicsBonus+descriptionBonus; got != want {
		t.Fatalf("evidence bonus = %d, want %d", got, want)
	}
}

func TestScoreDeterministic(t *testing.T) {
	var engine Engine
	evidence := Evidence{
		Description:          "纸箱",
		Characteristics:      []string{"纸质", "方形", "可折叠"},
		MaterialType:         "纸类",
		DisposalInstructions: "压扁后投入可回收物桶",
	}
	first := engine.Score("纸类", "可回收垃圾", 0.82, evidence)
	for i := 0; i < 5; i++ {
		again := engine.Score("纸类", "可回收垃圾", 0.82, evidence)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestScoreMatchDerivedFromVerdict(t *testing.T) {
	var engine Engine
	cases := []struct {
		name     string
		detected string
		expected string
		match    bool
	}{
		{"exact", "湿垃圾", "湿垃圾", true},
		{"same group", "果皮", "湿垃圾", true},
		{"mismatch", "果皮", "有害垃圾", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.Score(tc.detected, tc.expected, 0.9, Evidence{})
			if result.Match != tc.match {
				t.Fatalf("Match = %v, want %v", result.Match, tc.match)
			}
		})
	}
}

func TestScoreListsAreCapped(t *testing.T) {
	var engine Engine
	result := engine.Score("有害垃圾", "可回收垃圾", 0.1, Evidence{
		Characteristics:      []string{"模糊"},
		DisposalInstructions: "投入有害垃圾桶",
	})
	if len(result.Suggestions) > maxSuggestions {
		t.Fatalf("suggestions = %d entries, cap is %d", len(result.Suggestions), maxSuggestions)
	}
	if len(result.ImprovementTips) > maxTips {
		t.Fatalf("tips = %d entries, cap is %d", len(result.ImprovementTips), maxTips)
	}
	if len(result.LearningPoints) > maxLearningPoints {
		t.Fatalf("learning points = %d entries, cap is %d", len(result.LearningPoints), maxLearningPoints)
	}
	if len(result.Suggestions) == 0 {
		t.Fatalf("suggestions empty; the disposal reference should always be present")
	}
}
