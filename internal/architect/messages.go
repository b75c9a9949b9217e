package architect

// User-facing texts for the dialogue's failure and completion paths.
const (
	// Greeting opens the DM conversation right after /start.
	Greeting = "Greetings! I am the Server Architect and am ready to help you create your dream server. Please tell me what you are looking to make and we will go from there."

	apologyText = "Sorry, I'm having a little trouble connecting to my brain right now. Please try again in a moment."

	invalidPayloadText = "There was an error in the JSON structure I generated. Could you please review our conversation and try summarizing the details again?"

	unclosedFenceText = "I seem to have formatted my final response incorrectly. Let's try that again. Can you confirm the details one last time?"

	progressText = "Great! I have the final configuration. Please wait while I re-build the server. This might take a moment..."

	guildGoneText = "I can no longer see the server we were working on. Please make sure that I am in the server you want to re-build."

	applyFailedText = "I'm sorry, but I ran into an error while configuring the server. Please check my permissions and try again."

	successTextFormat = "✅ Your server, '%s', has been reconfigured successfully!"
)
