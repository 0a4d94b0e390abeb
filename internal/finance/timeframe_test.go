package finance

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestResolveTimeframe(t *testing.T) {
	// 2026-09-01 is a Tuesday; the upcoming Saturday is 2026-09-05.
	tuesday := date(2026, time.September, 1)
	friday := date(2026, time.September, 4)
	saturday := date(2026, time.September, 5)
	sunday := date(2026, time.September, 6)

	tests := []struct {
		name           string
		phrase         string
		today          civil.Date
		want           civil.Date
		wantAssumption bool
	}{
		{
			name:           "absent phrase falls back to nearest Saturday",
			phrase:         "",
			today:          tuesday,
			want:           saturday,
			wantAssumption: true,
		},
		{
			name:           "tomorrow",
			phrase:         "tomorrow",
			today:          tuesday,
			want:           tuesday.AddDays(1),
			wantAssumption: false,
		},
		{
			name:           "this_weekend normalizes underscores",
			phrase:         "this_weekend",
			today:          tuesday,
			want:           saturday,
			wantAssumption: false,
		},
		{
			name:           "saturday keyword",
			phrase:         "on Saturday",
			today:          tuesday,
			want:           saturday,
			wantAssumption: false,
		},
		{
			name:           "sunday maps to Saturday",
			phrase:         "sunday",
			today:          tuesday,
			want:           saturday,
			wantAssumption: false,
		},
		{
			name:           "weekend on a Saturday is a week out, never today",
			phrase:         "weekend",
			today:          saturday,
			want:           saturday.AddDays(7),
			wantAssumption: false,
		},
		{
			name:           "weekend on a Sunday",
			phrase:         "weekend",
			today:          sunday,
			want:           saturday.AddDays(7),
			wantAssumption: false,
		},
		{
			name:           "friday from midweek",
			phrase:         "next friday",
			today:          tuesday,
			want:           friday,
			wantAssumption: false,
		},
		{
			name:           "friday on a Friday is a week out",
			phrase:         "friday",
			today:          friday,
			want:           friday.AddDays(7),
			wantAssumption: false,
		},
		{
			name:           "friday on a Saturday",
			phrase:         "friday",
			today:          saturday,
			want:           friday.AddDays(7),
			wantAssumption: false,
		},
		{
			name:           "week without a weekday keyword",
			phrase:         "in a week",
			today:          tuesday,
			want:           tuesday.AddDays(7),
			wantAssumption: false,
		},
		{
			name:           "weekend wins over week",
			phrase:         "next weekend",
			today:          tuesday,
			want:           saturday,
			wantAssumption: false,
		},
		{
			name:           "tomorrow wins over weekend",
			phrase:         "tomorrow or the weekend",
			today:          tuesday,
			want:           tuesday.AddDays(1),
			wantAssumption: false,
		},
		{
			name:           "unrecognized phrase falls back with assumption",
			phrase:         "whenever",
			today:          tuesday,
			want:           saturday,
			wantAssumption: true,
		},
		{
			name:           "case insensitive",
			phrase:         "TOMORROW",
			today:          tuesday,
			want:           tuesday.AddDays(1),
			wantAssumption: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, assumption := ResolveTimeframe(tt.phrase, tt.today)
			if got != tt.want {
				t.Errorf("ResolveTimeframe(%q) date = %s, want %s", tt.phrase, got, tt.want)
			}
			if assumption != tt.wantAssumption {
				t.Errorf("ResolveTimeframe(%q) assumption = %v, want %v", tt.phrase, assumption, tt.wantAssumption)
			}
		})
	}
}
