package prepgen

import (
	"strings"
	"testing"
	"time"

	"github.com/caresync/portal-api/entities"
)

func testAppointment(reason string) entities.Appointment {
	return entities.Appointment{
		ID:          "appt-1",
		PatientID:   "patient-1",
		DoctorID:    "doctor-1",
		Reason:      reason,
		Status:      entities.AppointmentScheduled,
		ScheduledAt: time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestFollowUpChecklistAndQuestions(t *testing.T) {
	pack := Generate(testAppointment("Follow-up check"), nil, nil)

	if len(pack.Checklist) < 5 {
		t.Errorf("Expected at least 5 checklist items (3 universal + 2 follow-up), got %d", len(pack.Checklist))
	}
	if len(pack.QuestionsToAsk) < 4 {
		t.Errorf("Expected at least 4 questions (2 universal + 2 follow-up), got %d", len(pack.QuestionsToAsk))
	}
}

func TestBloodTestRules(t *testing.T) {
	pack := Generate(testAppointment("Blood test"), nil, nil)

	foundFasting := false
	for _, item := range pack.Checklist {
		if strings.Contains(item.Text, "Fast for 8-12 hours") {
			foundFasting = true
		}
	}
	if !foundFasting {
		t.Error("Expected the fasting checklist item for a blood test")
	}

	foundResults := false
	for _, doc := range pack.DocumentsNeeded {
		if doc == "Previous test results" {
			foundResults = true
		}
	}
	if !foundResults {
		t.Errorf("Expected previous test results in documents, got %v", pack.DocumentsNeeded)
	}
}

func TestUnmatchedReasonKeepsUniversalItems(t *testing.T) {
	pack := Generate(testAppointment("Annual physical"), nil, nil)

	if len(pack.Checklist) != 3 {
		t.Errorf("Expected only the 3 universal checklist items, got %d", len(pack.Checklist))
	}
	if len(pack.QuestionsToAsk) != 2 {
		t.Errorf("Expected only the 2 universal questions, got %d", len(pack.QuestionsToAsk))
	}
	if len(pack.DocumentsNeeded) != 2 {
		t.Errorf("Expected only insurance card and photo ID, got %v", pack.DocumentsNeeded)
	}
}

func TestMultipleKeywordGroupsStack(t *testing.T) {
	pack := Generate(testAppointment("Follow-up blood test for chronic pain"), nil, nil)

	// follow/check + blood/lab/test + pain/chronic all match: 3 + 2 + 2 + 2
	if len(pack.Checklist) != 9 {
		t.Errorf("Expected 9 checklist items from three stacked groups, got %d", len(pack.Checklist))
	}
}

func TestPrescriptionsAddQuestionsAndMention(t *testing.T) {
	prescriptions := []entities.Prescription{
		{ID: "rx-1", Medication: entities.Medication{Name: "Lisinopril"}, Status: entities.PrescriptionActive},
		{ID: "rx-2", Medication: entities.Medication{Name: "Metformin"}, Status: entities.PrescriptionActive},
	}

	pack := Generate(testAppointment("Annual physical"), nil, prescriptions)

	if len(pack.QuestionsToAsk) != 4 {
		t.Errorf("Expected 2 universal + 2 medication questions, got %d", len(pack.QuestionsToAsk))
	}

	found := false
	for _, mention := range pack.ThingsToMention {
		if strings.Contains(mention, "2 active prescription(s)") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected the prescription count mention, got %v", pack.ThingsToMention)
	}
}

func TestThingsToMentionCapsAtThreeMostRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []entities.MedicalRecord{
		{Diagnosis: "Oldest", RecordedAt: base},
		{Diagnosis: "Newest", RecordedAt: base.AddDate(0, 3, 0)},
		{Diagnosis: "Old", RecordedAt: base.AddDate(0, 1, 0)},
		{Diagnosis: "Recent", RecordedAt: base.AddDate(0, 2, 0)},
	}

	pack := Generate(testAppointment("Annual physical"), records, nil)

	if len(pack.ThingsToMention) != 3 {
		t.Fatalf("Expected 3 mentions, got %d: %v", len(pack.ThingsToMention), pack.ThingsToMention)
	}
	if !strings.Contains(pack.ThingsToMention[0], "Newest") {
		t.Errorf("Expected the newest record first, got %q", pack.ThingsToMention[0])
	}
	for _, mention := range pack.ThingsToMention {
		if strings.Contains(mention, "Oldest") {
			t.Error("The oldest record should have been dropped")
		}
	}
}

func TestRecordsAddDocumentEntry(t *testing.T) {
	records := []entities.MedicalRecord{{Diagnosis: "Hypertension", RecordedAt: time.Now()}}

	pack := Generate(testAppointment("Annual physical"), records, nil)

	found := false
	for _, doc := range pack.DocumentsNeeded {
		if doc == "Previous medical records" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected previous medical records in documents, got %v", pack.DocumentsNeeded)
	}
}

func TestImagingAndReferralDocuments(t *testing.T) {
	pack := Generate(testAppointment("Specialist referral for MRI scan"), nil, nil)

	want := map[string]bool{"Referral letter": false, "Previous imaging": false}
	for _, doc := range pack.DocumentsNeeded {
		if _, ok := want[doc]; ok {
			want[doc] = true
		}
	}
	for doc, found := range want {
		if !found {
			t.Errorf("Expected %q in documents, got %v", doc, pack.DocumentsNeeded)
		}
	}
}

func TestChecklistItemsInitializeIncomplete(t *testing.T) {
	pack := Generate(testAppointment("Follow-up surgery check with blood test"), nil, nil)

	ids := make(map[string]bool)
	for _, item := range pack.Checklist {
		if item.Completed {
			t.Errorf("Checklist item %q initialized completed", item.Text)
		}
		if item.ID == "" {
			t.Errorf("Checklist item %q has no ID", item.Text)
		}
		if ids[item.ID] {
			t.Errorf("Duplicate checklist item ID %q", item.ID)
		}
		ids[item.ID] = true
		if item.Category == "" {
			t.Errorf("Checklist item %q has no category", item.Text)
		}
	}
}

func TestSummaryNamesReasonAndDate(t *testing.T) {
	pack := Generate(testAppointment("Blood test"), nil, nil)

	if !strings.Contains(pack.Summary, "Blood test") {
		t.Errorf("Expected reason in summary, got %q", pack.Summary)
	}
	if !strings.Contains(pack.Summary, "September 14, 2026") {
		t.Errorf("Expected formatted date in summary, got %q", pack.Summary)
	}
}

func TestPackEchoesAppointmentFields(t *testing.T) {
	appt := testAppointment("Blood test")
	pack := Generate(appt, nil, nil)

	if pack.AppointmentID != appt.ID {
		t.Errorf("Expected appointment ID %q, got %q", appt.ID, pack.AppointmentID)
	}
	if pack.AppointmentReason != appt.Reason {
		t.Errorf("Expected reason %q, got %q", appt.Reason, pack.AppointmentReason)
	}
	if !pack.AppointmentDate.Equal(appt.ScheduledAt) {
		t.Errorf("Expected date %v, got %v", appt.ScheduledAt, pack.AppointmentDate)
	}
}
