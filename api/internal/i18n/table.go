package i18n

var table = map[Language]map[string]string{
	English: {
		"unknown":       "Unknown",
		"errorAnalysis": "Unable to analyze the image. Please try again.",
		"consultDoctor": "Please consult an aquaculture expert.",
		"errorUpload":   "Please upload an image first.",

		"start": "🐟 AquaHealth\n\nSend a photo of a fish to detect diseases and get treatment recommendations.\n" +
			"Commands: /detect, /temp, /location, /seed, /species, /lang, /clear, /health",
		"help": "• Send a fish photo, then tap \"Detect Disease\".\n" +
			"• /temp 28 Tilapia: assess a water temperature reading.\n" +
			"• /location Bangkok: weather, risk and 3-day forecast for your pond.\n" +
			"• /seed: count fish seeds in a fry photo.\n" +
			"• /lang en | te: switch language.",
		"unknownCommand":  "Unknown command. Try /help",
		"detectTitle":     "Detect Fish Disease",
		"detectHint":      "Upload a fish image to detect diseases and get treatment recommendations",
		"photoAccepted":   "Image received. Tap \"Detect Disease\" to analyze it.",
		"notImage":        "That file is not an image.",
		"imageCleared":    "Image removed.",
		"detectButton":    "🔍 Detect Disease",
		"clearButton":     "✖ Remove image",
		"analyzing":       "AI is analyzing the image...",
		"retryButton":     "🔄 Try Again",
		"connectionError": "Connection Error",
		"busy":            "Still working on the previous request…",
		"resultsTitle":    "Detection Results",
		"labelDisease":    "Disease Detected",
		"labelConfidence": "Confidence Level",
		"labelCause":      "Cause",
		"labelSeverity":   "Severity Level",
		"labelTreatment":  "Recommended Treatment",
		"warnLow":         "Low Confidence Detection",
		"warnModerate":    "Moderate Confidence",
		"readAloud":       "🔊 Read Aloud",
		"stop":            "🔇 Stop",
		"loading":         "Loading...",
		"languageChanged": "Language set to English.",
		"languageUsage":   "Usage: /lang en | te",
		"footer":          "Powered by AI • For professional aquaculture use",

		"tempTitle":          "Manual Temperature Assessment",
		"tempPrompt":         "Enter your current water temperature in °C (valid range: -50°C to 60°C), e.g. 28",
		"tempEmpty":          "Please enter a temperature",
		"tempRange":          "Temperature must be between -50°C and 60°C",
		"tempFailed":         "Failed to assess temperature",
		"assessing":          "Assessing...",
		"riskTitle":          "Temperature Risk Assessment",
		"current":            "Current",
		"safeRange":          "Safe Temperature Range",
		"outOfRange":         "⚠️ OUT OF SAFE RANGE",
		"priority":           "Priority Level",
		"urgencyHigh":        "High",
		"urgencyModerate":    "Moderate",
		"urgencyLow":         "Low",
		"possibleIssues":     "⚠️ Possible Issues",
		"recommendedActions": "Recommended Actions",
		"diseaseRisks":       "Disease Risk Factors",
		"species":            "Species",
		"speciesPrompt":      "Choose your aquaculture species:",
		"speciesSet":         "Species set to %s.",
		"speciesUnknown":     "Unknown species. Choose one of: %s",
		"speciesListTitle":   "Supported species (safe range, optimal):",

		"locationTitle":   "Location-Based Temperature Monitoring",
		"locationPrompt":  "Send a city name (e.g. 'Bangkok'), 'city, country' or coordinates ('13.7563,100.5018').",
		"locationEmpty":   "Please enter a location",
		"locationFailed":  "Failed to fetch weather data",
		"checkingWeather": "Checking Weather...",
		"currentWeather":  "Current Weather at %s",
		"temperature":     "Temperature",
		"humidity":        "Humidity",
		"coordinates":     "Location",
		"forecastTitle":   "3-Day Temperature Forecast",
		"urgency":         "Urgency",
		"weatherCredit":   "Weather data powered by Open-Meteo • Updated %s",

		"seedTitle":       "🐟 Fish Seed Counter",
		"seedPrompt":      "Upload a fry image and get an estimated count using the detection model.",
		"seedSensitivity": "Detection Sensitivity: %d%%",
		"seedRecommended": "Recommended: 5–10% confidence (model performs better here).",
		"seedButton":      "🔢 Count Fish Seeds",
		"counting":        "Counting...",
		"seedFailed":      "Failed to count fish seeds",
		"estimatedCount":  "Estimated Count",
		"thresholdUsed":   "Confidence threshold used: %d%%",

		"healthOK":   "✅ Service online (model loaded: %v)",
		"healthDown": "⚠️ Service unavailable: %v",
	},
	Telugu: {
		"unknown":       "తెలియదు",
		"errorAnalysis": "చిత్రాన్ని విశ్లేషించలేకపోయాము. దయచేసి మళ్ళీ ప్రయత్నించండి.",
		"consultDoctor": "దయచేసి జల వ్యవసాయ నిపుణుడిని సంప్రదించండి.",
		"errorUpload":   "దయచేసి ముందుగా చిత్రాన్ని అప్‌లోడ్ చేయండి.",

		"start": "🐟 AquaHealth\n\nవ్యాధులను గుర్తించడానికి చేప ఫోటోను పంపండి.\n" +
			"ఆదేశాలు: /detect, /temp, /location, /seed, /species, /lang, /clear, /health",
		"unknownCommand":  "తెలియని ఆదేశం. /help ప్రయత్నించండి",
		"detectTitle":     "చేపల వ్యాధిని గుర్తించండి",
		"detectHint":      "వ్యాధిలను గుర్తించడానికి మరియు చికిత్స సిఫార్సులను పొందడానికి చేపల చిత్రాన్ని అప్‌లోడ్ చేయండి",
		"photoAccepted":   "చిత్రం అందింది. విశ్లేషించడానికి \"వ్యాధిని గుర్తించండి\" నొక్కండి.",
		"notImage":        "ఈ ఫైల్ చిత్రం కాదు.",
		"imageCleared":    "చిత్రం తీసివేయబడింది.",
		"detectButton":    "🔍 వ్యాధిని గుర్తించండి",
		"clearButton":     "✖ చిత్రాన్ని తీసివేయండి",
		"analyzing":       "AI చిత్రాన్ని విశ్లేషిస్తోంది...",
		"retryButton":     "🔄 మళ్ళీ ప్రయత్నించండి",
		"connectionError": "కనెక్షన్ లోపం",
		"busy":            "మునుపటి అభ్యర్థన ఇంకా ప్రాసెస్ అవుతోంది…",
		"resultsTitle":    "గుర్తింపు ఫలితాలు",
		"labelDisease":    "గుర్తించిన వ్యాధి",
		"labelConfidence": "విశ్వాస స్థాయి",
		"labelCause":      "కారణం",
		"labelSeverity":   "తీవ్రత స్థాయి",
		"labelTreatment":  "సిఫార్సు చేసిన చికిత్స",
		"warnLow":         "తక్కువ విశ్వాస గుర్తింపు",
		"warnModerate":    "మధ్యస్థ విశ్వాసం",
		"readAloud":       "🔊 చదవండి",
		"stop":            "🔇 ఆపు",
		"loading":         "లోడ్ అవుతోంది...",
		"languageChanged": "భాష తెలుగుకు మార్చబడింది.",
		"footer":          "AI ద్వారా శక్తివంతం • వృత్తిపరమైన జల వ్యవసాయ వినియోగం కోసం",

		"tempEmpty":  "దయచేసి ఉష్ణోగ్రతను నమోదు చేయండి",
		"tempRange":  "ఉష్ణోగ్రత -50°C మరియు 60°C మధ్య ఉండాలి",
		"riskTitle":  "ఉష్ణోగ్రత ప్రమాద అంచనా",
		"safeRange":  "సురక్షిత ఉష్ణోగ్రత పరిధి",
		"species":    "జాతి",
		"humidity":   "తేమ",
		"seedTitle":  "🐟 చేప పిల్లల లెక్కింపు",
		"seedButton": "🔢 చేప పిల్లలను లెక్కించండి",
	},
}
