package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CABINET_1_ID", "")
	t.Setenv("CABINET_2_ID", "")
	t.Setenv("DOCTOR_ID_1", "")
	t.Setenv("DEFAULT_DOCTOR_ID", "")
	t.Setenv("DOCTOR_ID_2", "")
	t.Setenv("WORK_START_HOUR", "")
	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Room1ID != "10000" || cfg.Room2ID != "20000" {
		t.Fatalf("expected default cabinets, got %s/%s", cfg.Room1ID, cfg.Room2ID)
	}
	if cfg.Provider1ID != "11111" {
		t.Fatalf("expected default doctor, got %s", cfg.Provider1ID)
	}
	if cfg.WorkStartHour != 9 || cfg.WorkEndHour != 19 {
		t.Fatalf("expected default working hours, got %d-%d", cfg.WorkStartHour, cfg.WorkEndHour)
	}
	if cfg.AppointmentDuration != 30 {
		t.Fatalf("expected default duration, got %d", cfg.AppointmentDuration)
	}
	if got := cfg.Providers(); len(got) != 1 || got[0] != "11111" {
		t.Fatalf("expected single default provider, got %v", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CRM_API_BASE_URL", "https://crm.example.com/api")
	t.Setenv("CRM_API_TOKEN", "secret")
	t.Setenv("CABINET_1_ID", "101")
	t.Setenv("CABINET_2_ID", "102")
	t.Setenv("DOCTOR_ID_1", "d1")
	t.Setenv("DOCTOR_ID_2", "d2")
	t.Setenv("WORK_START_HOUR", "8")
	t.Setenv("WORK_END_HOUR", "20")
	t.Setenv("APPOINTMENT_DURATION_MINUTES", "15")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.CRMBaseURL != "https://crm.example.com/api" || cfg.CRMToken != "secret" {
		t.Fatalf("expected CRM overrides, got %s/%s", cfg.CRMBaseURL, cfg.CRMToken)
	}
	if cfg.WorkStartHour != 8 || cfg.WorkEndHour != 20 || cfg.AppointmentDuration != 15 {
		t.Fatalf("expected hours override, got %d-%d/%d", cfg.WorkStartHour, cfg.WorkEndHour, cfg.AppointmentDuration)
	}
	if got := cfg.Providers(); len(got) != 2 || got[0] != "d1" || got[1] != "d2" {
		t.Fatalf("expected two providers in priority order, got %v", got)
	}
}

func TestDoctorFallback(t *testing.T) {
	t.Setenv("DOCTOR_ID_1", "")
	t.Setenv("DEFAULT_DOCTOR_ID", "fallback-doc")
	cfg := Load()
	if cfg.Provider1ID != "fallback-doc" {
		t.Fatalf("expected DEFAULT_DOCTOR_ID fallback, got %s", cfg.Provider1ID)
	}
}
