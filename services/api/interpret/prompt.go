package interpret

import (
	"fmt"

	"github.com/davin-ai/agriview/services/api/normalize"
)

// InitialPrompt renders the agronomist briefing for the latest reading.
func InitialPrompt(r normalize.Reading) string {
	return fmt.Sprintf(`You are an expert agronomist analyzing real-time sensor data from a farm.
Interpret the following sensor readings in simple terms:

%s

Respond with:
1. **Current Condition Analysis**
2. **Potential Impact**
3. **Recommendations**`, readingBlock(r))
}

// FollowUpPrompt renders a follow-up question against the same reading.
func FollowUpPrompt(r normalize.Reading, question string) string {
	return fmt.Sprintf(`You are an agronomy expert. Here are the latest sensor readings:

%s

The farmer asks: %q`, readingBlock(r), question)
}

func readingBlock(r normalize.Reading) string {
	return fmt.Sprintf(`Temperature: %.2f °C
Humidity: %.2f %%
Soil Moisture: %.2f
Nitrogen: %.2f mg/kg
Phosphorus: %.2f mg/kg
Potassium: %.2f mg/kg`,
		r.Temperature,
		r.Humidity,
		r.SoilMoisture,
		r.SoilNitrogen,
		r.SoilPhosphorus,
		r.SoilPotassium,
	)
}
