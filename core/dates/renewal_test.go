package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenewal(t *testing.T) {
	tests := []struct {
		name     string
		creation time.Time
		current  time.Time
		want     time.Time
	}{
		{
			name:     "anniversary still ahead this year",
			creation: date(2021, time.May, 10),
			current:  date(2024, time.March, 15),
			want:     date(2024, time.May, 10),
		},
		{
			name:     "anniversary already passed rolls to next year",
			creation: date(2021, time.January, 10),
			current:  date(2024, time.March, 15),
			want:     date(2025, time.January, 10),
		},
		{
			name:     "anniversary today is kept",
			creation: date(2021, time.March, 15),
			current:  date(2024, time.March, 15),
			want:     date(2024, time.March, 15),
		},
		{
			name:     "feb 29 into leap year",
			creation: date(2020, time.February, 29),
			current:  date(2024, time.January, 15),
			want:     date(2024, time.February, 29),
		},
		{
			name:     "feb 29 into non-leap year projects to mar 1 then next leap year",
			creation: date(2020, time.February, 29),
			current:  date(2023, time.March, 15),
			want:     date(2024, time.February, 29),
		},
		{
			name:     "feb 29 passed in leap year lands on mar 1 of next year",
			creation: date(2020, time.February, 29),
			current:  date(2024, time.March, 15),
			want:     date(2025, time.March, 1),
		},
		{
			name:     "feb 29 into non-leap year when mar 1 is still ahead",
			creation: date(2020, time.February, 29),
			current:  date(2023, time.February, 10),
			want:     date(2023, time.March, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Renewal(tt.creation, tt.current)
			if !got.Equal(tt.want) {
				t.Errorf("Renewal(%s, %s) = %s, want %s",
					Format(tt.creation), Format(tt.current), Format(got), Format(tt.want))
			}
			if got.Before(tt.current) {
				t.Errorf("renewal date %s is before current date %s", Format(got), Format(tt.current))
			}
		})
	}
}

func TestRenewalKeepsMonthAndDay(t *testing.T) {
	creation := date(2019, time.November, 3)
	for year := 2020; year <= 2030; year++ {
		got := Renewal(creation, date(year, time.June, 1))
		if got.Month() != time.November || got.Day() != 3 {
			t.Errorf("year %d: got %s, want month/day 11-03", year, Format(got))
		}
	}
}

func TestParseCreation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 timestamp",
			value: "2021-05-10T14:30:00+00:00",
			want:  date(2021, time.May, 10),
		},
		{
			name:  "date only",
			value: "2021-05-10",
			want:  date(2021, time.May, 10),
		},
		{
			name:    "malformed",
			value:   "10/05/2021",
			wantErr: true,
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCreation(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.value, Format(got))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseCreation(%q) = %s, want %s", tt.value, Format(got), Format(tt.want))
			}
		})
	}
}
