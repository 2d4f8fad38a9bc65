package catalog

// Default returns the catalog shipped with the site.
func Default() *Catalog {
	return &Catalog{
		Symptoms: []SymptomOption{
			{Key: "No cooling", Label: "No cooling / warm air"},
			{Key: "Leaking water", Label: "Leaking water"},
			{Key: "Won’t turn on / tripping breaker", Label: "Won’t turn on / trips breaker"},
			{Key: "Maintenance", Label: "Routine maintenance"},
			{Key: "New install", Label: "New installation"},
			{Key: "Other / Not sure", Label: "Not sure—help me figure it out"},
		},
		FAQ: []FAQEntry{
			{
				Question: "Do you offer same-day service?",
				Answer:   "Often, yes—especially if booked by 2pm. We’ll confirm by text if a technician is available in your area.",
			},
			{
				Question: "What are your hours?",
				Answer:   "Weekdays 8am–6pm. After-hours by availability with a surcharge. No 24/7 guarantees.",
			},
			{
				Question: "How much is the diagnostic?",
				Answer:   "$129 in most NYC zip codes (weekdays 8–6). Applied to the repair if you approve it during the same visit.",
			},
			{
				Question: "Do you work on window units?",
				Answer:   "Basic cleaning and minor repairs are possible, but older or unsafe window units may be replacement-only. We’ll advise honestly.",
			},
			{
				Question: "Can you provide a COI?",
				Answer:   "Yes. Tell us your building’s requirements when you book.",
			},
			{
				Question: "What payment methods do you accept?",
				Answer:   "Major credit/debit cards and ACH. Deposits for installations; payment due at completion for repairs.",
			},
			{
				Question: "What if parts aren’t available same day?",
				Answer:   "We’ll order immediately and schedule the earliest return visit. You’ll get realistic ETAs.",
			},
			{
				Question: "What’s your warranty?",
				Answer:   "1‑year labor on our repairs. Parts per manufacturer. We stand behind the work and document what we did.",
			},
			{
				Question: "What’s your cancellation policy?",
				Answer:   "No fee if you cancel or reschedule by 5pm the business day before. Same-day cancellations may incur a fee if a tech is already en route.",
			},
		},
	}
}
