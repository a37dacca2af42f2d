// Package medsafety implements the medication safety analyzer: drug-drug
// interaction detection, duplicate therapy detection, and risk aggregation
// over static knowledge tables.
package medsafety

import "github.com/caresync/portal-api/entities"

// InteractionRule maps one trigger drug substring to the drug substrings it
// is known to interact with. One severity and description per rule; pairs
// with different severities live in separate rules.
type InteractionRule struct {
	Trigger       string
	InteractsWith []string
	Severity      entities.Severity
	Description   string
}

// TherapeuticClass groups representative drug substrings that share a
// pharmacological action. Two or more matches flag a duplicate therapy.
type TherapeuticClass struct {
	Name  string
	Drugs []string
}

// interactionTable is the static interaction knowledge base. All entries are
// lowercase alphanumeric so they match normalized medication names directly.
// Rules are scanned in order, which keeps analyzer output deterministic.
var interactionTable = []InteractionRule{
	{
		Trigger:       "warfarin",
		InteractsWith: []string{"aspirin", "ibuprofen", "naproxen"},
		Severity:      entities.SeverityMajor,
		Description:   "Combining warfarin with antiplatelet or NSAID therapy significantly increases the risk of serious bleeding.",
	},
	{
		Trigger:       "warfarin",
		InteractsWith: []string{"amiodarone", "fluconazole", "metronidazole"},
		Severity:      entities.SeverityMajor,
		Description:   "These medications inhibit warfarin metabolism and can raise INR to dangerous levels.",
	},
	{
		Trigger:       "fluoxetine",
		InteractsWith: []string{"phenelzine", "tranylcypromine", "isocarboxazid", "selegiline"},
		Severity:      entities.SeverityCritical,
		Description:   "Combining an SSRI with an MAOI can cause serotonin syndrome, a potentially life-threatening condition.",
	},
	{
		Trigger:       "sertraline",
		InteractsWith: []string{"phenelzine", "tranylcypromine", "isocarboxazid", "selegiline"},
		Severity:      entities.SeverityCritical,
		Description:   "Combining an SSRI with an MAOI can cause serotonin syndrome, a potentially life-threatening condition.",
	},
	{
		Trigger:       "sildenafil",
		InteractsWith: []string{"nitroglycerin", "isosorbide"},
		Severity:      entities.SeverityCritical,
		Description:   "PDE5 inhibitors taken with nitrates can cause a severe, potentially fatal drop in blood pressure.",
	},
	{
		Trigger:       "simvastatin",
		InteractsWith: []string{"clarithromycin", "erythromycin", "itraconazole"},
		Severity:      entities.SeverityMajor,
		Description:   "These antimicrobials block statin clearance and raise the risk of muscle injury and rhabdomyolysis.",
	},
	{
		Trigger:       "tramadol",
		InteractsWith: []string{"fluoxetine", "sertraline", "paroxetine"},
		Severity:      entities.SeverityMajor,
		Description:   "Tramadol combined with an SSRI increases the risk of serotonin syndrome and seizures.",
	},
	{
		Trigger:       "lisinopril",
		InteractsWith: []string{"spironolactone", "potassium"},
		Severity:      entities.SeverityModerate,
		Description:   "ACE inhibitors with potassium-sparing agents can elevate serum potassium.",
	},
	{
		Trigger:       "lisinopril",
		InteractsWith: []string{"ibuprofen", "naproxen"},
		Severity:      entities.SeverityModerate,
		Description:   "NSAIDs can blunt the blood-pressure-lowering effect of ACE inhibitors and stress the kidneys.",
	},
	{
		Trigger:       "clopidogrel",
		InteractsWith: []string{"omeprazole", "esomeprazole"},
		Severity:      entities.SeverityModerate,
		Description:   "Some proton pump inhibitors reduce the antiplatelet effect of clopidogrel.",
	},
	{
		Trigger:       "digoxin",
		InteractsWith: []string{"amiodarone", "verapamil"},
		Severity:      entities.SeverityMajor,
		Description:   "These medications raise digoxin levels and can cause digoxin toxicity.",
	},
	{
		Trigger:       "levothyroxine",
		InteractsWith: []string{"calcium", "omeprazole", "ferrous"},
		Severity:      entities.SeverityMinor,
		Description:   "Calcium, iron, and acid-reducing medications can reduce levothyroxine absorption when taken together.",
	},
	{
		Trigger:       "metformin",
		InteractsWith: []string{"prednisone"},
		Severity:      entities.SeverityMinor,
		Description:   "Corticosteroids raise blood glucose and may reduce the effectiveness of metformin.",
	},
}

// therapeuticClasses is the static duplicate-therapy knowledge base.
var therapeuticClasses = []TherapeuticClass{
	{Name: "ACE Inhibitors", Drugs: []string{"lisinopril", "enalapril", "ramipril", "benazepril"}},
	{Name: "Beta Blockers", Drugs: []string{"metoprolol", "atenolol", "propranolol", "carvedilol"}},
	{Name: "Statins", Drugs: []string{"atorvastatin", "simvastatin", "rosuvastatin", "pravastatin"}},
	{Name: "NSAIDs", Drugs: []string{"ibuprofen", "naproxen", "diclofenac", "celecoxib"}},
	{Name: "Proton Pump Inhibitors", Drugs: []string{"omeprazole", "esomeprazole", "pantoprazole", "lansoprazole"}},
	{Name: "SSRIs", Drugs: []string{"fluoxetine", "sertraline", "paroxetine", "citalopram"}},
}

// recommendationFor maps interaction severity to the fixed patient-facing
// recommendation text.
func recommendationFor(s entities.Severity) string {
	switch s {
	case entities.SeverityCritical:
		return "Do not take these medications together. Contact your healthcare provider or pharmacist immediately."
	case entities.SeverityMajor:
		return "Contact your healthcare provider before taking your next dose."
	case entities.SeverityModerate:
		return "Discuss this combination with your provider at your next appointment."
	case entities.SeverityMinor:
		return "Mention this combination to your provider. It is usually manageable."
	}
	return "Discuss this combination with your healthcare provider."
}

const duplicateTherapyRecommendation = "Taking more than one medication from the same class is usually unintentional. Ask your provider whether both are needed."
