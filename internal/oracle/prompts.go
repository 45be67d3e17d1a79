// internal/oracle/prompts.go
// Prompt assembly and response schemas for structured-output calls.

package oracle

import (
	"fmt"
	"strings"
)

// pairPrompt frames the pair as an engagement-prediction task: the oracle
// estimates the probability of a swipe-right in each direction.
func pairPrompt(req *PairRequest) string {
	return fmt.Sprintf(`
Act as a recommendation system. You are predicting the probability of a specific engagement: a "Swipe Right".

Analyze the compatibility between the Source User and Candidate User based on their profile features.

**Source User Features (The one browsing):**
- Name: %s
- Age: %d
- Gender: %s
- Job Title: %s
- Bio: "%s"
- Interests: %s
- Looking For: "%s"
- Interested In (Gender): %s

**Candidate User Features (The profile being viewed):**
- Name: %s
- Age: %d
- Gender: %s
- Job Title: %s
- Bio: "%s"
- Interests: %s
- Looking For: "%s"

**Task:**
Predict the probability (0-100) of a "Swipe Right" action in both directions.

1. **sourceSwipeProbability**: What is the probability the Source User will swipe right on the Candidate? Consider if the Candidate matches the Source's "Looking For" and preferences.
2. **targetSwipeProbability**: What is the probability the Candidate User will swipe right on the Source? Consider if the Source matches the Candidate's "Looking For" and preferences.
3. **Match Factors**: Extract key reasons for these predictions.

(See attached images if any for visual vibe check)
`,
		req.Source.Name, req.Source.Age, req.Source.Gender, req.Source.JobTitle,
		req.Source.Bio, strings.Join(req.Source.Interests, ", "), req.Source.LookingFor,
		strings.Join(req.Source.InterestedIn, ", "),
		req.Target.Name, req.Target.Age, req.Target.Gender, req.Target.JobTitle,
		req.Target.Bio, strings.Join(req.Target.Interests, ", "), req.Target.LookingFor,
	)
}

func analysisPrompt(req *ProfileRequest) string {
	photoNote := ""
	if req.IncludePhoto {
		photoNote = "Also consider their profile photo in your analysis. Does it match the vibe they are going for?"
	}

	return fmt.Sprintf(`
You are a world-class Dating Coach and Profile Optimizer.

Here is the user's current profile:
- Name: %s
- Age: %d
- Job: %s
- Bio: "%s"
- Interests: %s

Here is who they are LOOKING FOR (Target Match):
"%s"

Analyze the gap between their current profile and what would attract their Target Match.
Provide constructive, specific feedback to optimize their profile.
Be honest but encouraging.

%s

IMPORTANT: For the 'suggestions' array:
- If you suggest a better Bio, set 'category' to 'Bio' and provide the full new bio in 'exampleRewrite'.
- If you suggest adding interests, set 'category' to 'Interests' and provide a comma-separated list of interests in 'exampleRewrite' (e.g. "Hiking, Photography").
`,
		req.Profile.Name, req.Profile.Age, req.Profile.JobTitle, req.Profile.Bio,
		strings.Join(req.Profile.Interests, ", "), req.Profile.LookingFor, photoNote,
	)
}

// Response schemas constraining the model's JSON output

var judgmentSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"sourceSwipeProbability": map[string]interface{}{
			"type":        "INTEGER",
			"description": "Probability (0-100) that the Source user will swipe right on the Target.",
		},
		"targetSwipeProbability": map[string]interface{}{
			"type":        "INTEGER",
			"description": "Probability (0-100) that the Target user will swipe right on the Source.",
		},
		"reasoning": map[string]interface{}{
			"type":        "STRING",
			"description": "Reasoning for the predicted probabilities.",
		},
		"matchFactors": map[string]interface{}{
			"type":        "OBJECT",
			"description": "Extracted key match factors",
			"properties": map[string]interface{}{
				"sharedInterests": map[string]interface{}{
					"type":  "ARRAY",
					"items": map[string]interface{}{"type": "STRING"},
				},
				"personalityMatch":       map[string]interface{}{"type": "STRING"},
				"lifestyleCompatibility": map[string]interface{}{"type": "STRING"},
			},
		},
	},
	"required": []string{"sourceSwipeProbability", "targetSwipeProbability", "reasoning", "matchFactors"},
}

var analysisSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"matchScore": map[string]interface{}{
			"type":        "INTEGER",
			"description": "A score from 0 to 100 indicating how well the current profile attracts the described target match.",
		},
		"overallVibe": map[string]interface{}{
			"type":        "STRING",
			"description": "A 3-5 word summary of the 'vibe' the current profile gives off.",
		},
		"suggestions": map[string]interface{}{
			"type": "ARRAY",
			"items": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "STRING",
						"description": "The area of improvement (e.g., 'Bio', 'Tone', 'Interests', 'Photos').",
					},
					"advice": map[string]interface{}{
						"type":        "STRING",
						"description": "Specific advice on what to change to better attract the target match.",
					},
					"exampleRewrite": map[string]interface{}{
						"type":        "STRING",
						"description": "A specific example of how to rewrite a sentence or section.",
					},
					"impactScore": map[string]interface{}{
						"type":        "INTEGER",
						"description": "Predicted impact score from 1-10.",
					},
				},
				"required": []string{"category", "advice", "impactScore"},
			},
		},
	},
	"required": []string{"matchScore", "overallVibe", "suggestions"},
}

var imageSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"hairColor": map[string]interface{}{
			"type":        "STRING",
			"description": "Hair color of the person in the image. Keep it simple (e.g., Brown, Blonde, Black).",
		},
		"eyeColor": map[string]interface{}{
			"type":        "STRING",
			"description": "Eye color of the person in the image. Keep it simple (e.g., Blue, Brown, Green).",
		},
		"bodyType": map[string]interface{}{
			"type":        "STRING",
			"description": "General body type description (e.g., Athletic, Slim, Curvy, Average).",
		},
	},
	"required": []string{"hairColor", "eyeColor", "bodyType"},
}
