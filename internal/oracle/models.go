package oracle

// Features is the textual profile bundle sent to the oracle for one user
type Features struct {
	Name         string
	Age          int
	Gender       string
	JobTitle     string
	Bio          string
	Interests    []string
	LookingFor   string
	InterestedIn []string
}

// PairRequest asks for a compatibility judgment between a source user and a
// candidate. Photos are optional inline data-URLs; malformed payloads are
// dropped and scoring proceeds text-only.
type PairRequest struct {
	Source      Features
	Target      Features
	SourcePhoto string
	TargetPhoto string
}

// MatchFactors is the structured breakdown behind a judgment
type MatchFactors struct {
	SharedInterests        []string `json:"sharedInterests"`
	PersonalityMatch       string   `json:"personalityMatch"`
	LifestyleCompatibility string   `json:"lifestyleCompatibility"`
}

// Judgment is the oracle's verdict on one pair. Missing probabilities decode
// to zero rather than failing the call.
type Judgment struct {
	SourceSwipeProbability int          `json:"sourceSwipeProbability"`
	TargetSwipeProbability int          `json:"targetSwipeProbability"`
	Reasoning              string       `json:"reasoning"`
	MatchFactors           MatchFactors `json:"matchFactors"`
}

// ProfileRequest asks for coaching feedback on a single profile
type ProfileRequest struct {
	Profile      Features
	Photo        string
	IncludePhoto bool
}

// Suggestion is one piece of profile-improvement advice
type Suggestion struct {
	Category       string `json:"category"`
	Advice         string `json:"advice"`
	ExampleRewrite string `json:"exampleRewrite,omitempty"`
	ImpactScore    int    `json:"impactScore"`
}

// ProfileAnalysis is the oracle's coaching verdict on a profile
type ProfileAnalysis struct {
	MatchScore  int          `json:"matchScore"`
	OverallVibe string       `json:"overallVibe"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ImageAttributes are physical attributes extracted from a profile photo
type ImageAttributes struct {
	HairColor string `json:"hairColor"`
	EyeColor  string `json:"eyeColor"`
	BodyType  string `json:"bodyType"`
}
