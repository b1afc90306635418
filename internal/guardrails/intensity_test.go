package guardrails

import "testing"

func TestCheckQualityVolume(t *testing.T) {
	t.Run("t-pace over cap", func(t *testing.T) {
		// 6 km of T-pace in a 50 km week is 12%, over the 10% cap.
		result := CheckQualityVolume(50, QualityVolumes{TPaceKm: 6})
		if result.OK {
			t.Fatal("12% T-pace share should violate the 10% cap")
		}
		if len(result.Violations) != 1 {
			t.Fatalf("got %d violations, want 1", len(result.Violations))
		}
		v := result.Violations[0]
		if v.Rule != "quality_volume_t_pace" {
			t.Errorf("rule = %q, want quality_volume_t_pace", v.Rule)
		}
		if v.Limit != 10 {
			t.Errorf("limit = %v, want 10 (percent)", v.Limit)
		}
		if v.Value < 11.9 || v.Value > 12.1 {
			t.Errorf("value = %v, want ~12 (percent)", v.Value)
		}
	})

	t.Run("all intensities within caps", func(t *testing.T) {
		result := CheckQualityVolume(50, QualityVolumes{TPaceKm: 5, IPaceKm: 4, RPaceKm: 2.5})
		if !result.OK {
			t.Errorf("volumes at the caps should pass, got %+v", result.Violations)
		}
	})

	t.Run("each breach is its own violation", func(t *testing.T) {
		result := CheckQualityVolume(40, QualityVolumes{TPaceKm: 6, IPaceKm: 5, RPaceKm: 3})
		if len(result.Violations) != 3 {
			t.Errorf("got %d violations, want 3", len(result.Violations))
		}
	})

	t.Run("zero weekly volume checks nothing", func(t *testing.T) {
		result := CheckQualityVolume(0, QualityVolumes{TPaceKm: 6})
		if !result.OK {
			t.Error("no weekly volume should skip the check")
		}
	})
}

func TestCheckLongRun(t *testing.T) {
	t.Run("both caps breached yields two violations", func(t *testing.T) {
		// 160 min and 18 of 50 km (36%): both the duration cap and the
		// volume-share cap are broken.
		result := CheckLongRun(160, 18, 50)
		if result.OK {
			t.Fatal("should violate both long-run caps")
		}
		if len(result.Violations) != 2 {
			t.Fatalf("got %d violations, want 2", len(result.Violations))
		}
		if result.Violations[0].Rule != "long_run_duration" {
			t.Errorf("first rule = %q, want long_run_duration", result.Violations[0].Rule)
		}
		if result.Violations[1].Rule != "long_run_volume_share" {
			t.Errorf("second rule = %q, want long_run_volume_share", result.Violations[1].Rule)
		}
	})

	t.Run("within both caps", func(t *testing.T) {
		result := CheckLongRun(120, 14, 50)
		if !result.OK {
			t.Errorf("120 min / 28%% should pass, got %+v", result.Violations)
		}
	})

	t.Run("duration alone", func(t *testing.T) {
		result := CheckLongRun(155, 12, 50)
		if len(result.Violations) != 1 || result.Violations[0].Rule != "long_run_duration" {
			t.Errorf("violations = %+v, want one long_run_duration", result.Violations)
		}
	})
}
