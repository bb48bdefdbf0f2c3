package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountActionVerbs(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		want   int
	}{
		{name: "none", resume: "Responsible for things", want: 0},
		{name: "distinct", resume: "Led a team, built tools, designed APIs", want: 3},
		{name: "repeats count once", resume: "led led LED", want: 1},
		{name: "whole words only", resume: "ledger rebuilt undeveloped", want: 0},
		{name: "all", resume: "led built created designed developed managed launched executed", want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountActionVerbs(tt.resume))
		})
	}
}

func TestIsATSSafe(t *testing.T) {
	assert.True(t, IsATSSafe("Plain text resume"))
	assert.False(t, IsATSSafe("<TABLE><tr><td>x</td></tr></TABLE>"))
	assert.False(t, IsATSSafe(`<img src="me.png">`))
	assert.False(t, IsATSSafe("Layout Columns: 2"))
}

func TestCountSections(t *testing.T) {
	assert.Zero(t, CountSections("nothing to see"))
	assert.Equal(t, 1, CountSections("Academic background"))
	assert.Equal(t, 1, CountSections("Professional   Experience"))
	assert.Equal(t, 1, CountSections("Work\nExperience"))
	assert.Equal(t, 5, CountSections("Education. Work Experience. Skills. Projects. Phone: 123"))
	assert.Equal(t, 1, CountSections("skills skills skills"))
}

func TestCountBonusSignals(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		want   int
	}{
		{name: "none", resume: "Wrote code", want: 0},
		{name: "project", resume: "Side projects", want: 1},
		{name: "internship", resume: "Summer internship", want: 1},
		{name: "percentage", resume: "Improved latency by 30%", want: 1},
		{name: "dollar amount", resume: "Saved $5,000 per month", want: 1},
		{name: "reduced phrase", resume: "reduced 15% of costs", want: 1},
		{name: "all three", resume: "Internship project that cut costs 12.5 %", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountBonusSignals(tt.resume))
		})
	}
}
