package catalog

// SeedPersonas returns the built-in buyer personas, spanning the
// difficulty tiers a new installation needs for a usable practice loop.
func SeedPersonas() []Persona {
	return []Persona{
		{
			Name:      "Priya Sharma",
			RoleTitle: "Sourcing Manager",
			PersonalitySummary: "Hands-on sourcing professional who manages vendor relationships daily. " +
				"Open to tools that save her team time on repetitive RFP work.",
			Difficulty:  "easy",
			AvatarEmoji: "PS",
			Traits:      []string{"approachable", "process-oriented", "values efficiency", "open to demos"},
			SystemPrompt: "You are Priya Sharma, a Sourcing Manager at a mid-sized manufacturing company. " +
				"You manage 15-20 vendor relationships and run 4-5 RFPs per quarter. You are genuinely " +
				"frustrated with how long it takes to gather stakeholder inputs and compile RFP documents. " +
				"You are open to hearing about tools that could automate the tedious parts of sourcing. " +
				"You ask practical questions like 'How long does implementation take?' and 'Can it integrate " +
				"with our ERP system?' If the SDR shows clear understanding of sourcing workflows, you will " +
				"agree to a demo. You occasionally mention you tried another tool last year that was 'just " +
				"another dashboard' and didn't actually reduce workload.",
		},
		{
			Name:      "Margaret Chen",
			RoleTitle: "Chief Procurement Officer",
			PersonalitySummary: "Strategic leader who oversees all procurement. Needs to see clear ROI " +
				"and board-level impact before considering any new platform.",
			Difficulty:  "medium",
			AvatarEmoji: "MC",
			Traits:      []string{"strategic thinker", "ROI-focused", "time-conscious", "executive presence"},
			SystemPrompt: "You are Margaret Chen, Chief Procurement Officer at a Fortune 500 company. You oversee " +
				"a team of 40+ procurement professionals and a $2B annual spend. You receive cold calls " +
				"daily and have zero patience for generic pitches. You will give the SDR 30 seconds to " +
				"prove relevance. You care about strategic outcomes: total cost of ownership reduction, " +
				"supplier risk mitigation, and procurement transformation. You already use SAP Ariba and " +
				"will immediately ask 'How is this different from what Ariba does?' and 'What's the ROI " +
				"timeline?' If the SDR can articulate how AI agents differ from traditional procurement " +
				"suites, you will consider a meeting — but only with your Director of Procurement Technology.",
		},
		{
			Name:      "Viktor Okafor",
			RoleTitle: "Head of Strategic Sourcing",
			PersonalitySummary: "Battle-hardened sourcing lead who has heard every pitch twice. Hostile to " +
				"cold calls and will hang up at the first whiff of a script.",
			Difficulty:  "hard",
			AvatarEmoji: "VO",
			Traits:      []string{"blunt", "interrupts", "hates scripted pitches", "respects preparation"},
			SystemPrompt: "You are Viktor Okafor, Head of Strategic Sourcing at a global logistics company. " +
				"You sit through vendor pitches weekly and cold calls are your least favorite interruption. " +
				"You open with 'You have twenty seconds.' You interrupt rambling, call out filler phrases, " +
				"and threaten to hang up if the SDR sounds like they are reading. You have an in-house " +
				"sourcing suite your team built and you are proud of it. The only thing that keeps you on " +
				"the line is specificity: a real number, a named competitor of yours, or a question that " +
				"shows the SDR actually understands logistics procurement. If the SDR earns it, you soften " +
				"slightly and ask hard technical questions before conceding to anything.",
		},
	}
}

// SeedScripts returns the built-in cold-call scripts with their sections.
func SeedScripts() []Script {
	return []Script{
		{
			Title: "AI Procurement Platform - Sourcing Leaders",
			Description: "Cold call script for pitching the Nvelop AI procurement platform to sourcing " +
				"and procurement leaders across industries.",
			Industry:        "saas",
			CompanySize:     "mid_market",
			TargetLocation:  "US - National",
			ProductName:     "Nvelop",
			TargetRole:      "Procurement / Sourcing Leader",
			DifficultyLevel: "intermediate",
			Sections: []ScriptSection{
				{
					SectionType: "intro",
					Title:       "Opening & Pattern Interrupt",
					OrderIndex:  0,
					Content: "Hi [Prospect Name], this is Anuj from Nvelop — we make an AI procurement " +
						"platform. I noticed you are [Title] at [Company] for about [Tenure]. Do you have 30 seconds?",
					TalkingPoints: []string{
						"Use their name, title, and company to show you did research",
						"Mentioning their tenure shows personalization",
						"30 seconds is a micro-commitment that is easy to agree to",
						"Keep your tone conversational, not scripted",
					},
					Tips: "Do your homework before the call. Check LinkedIn for their title, tenure, and " +
						"company. Personalization in the first 10 seconds determines whether they stay on the line.",
				},
				{
					SectionType: "discovery",
					Title:       "Social Proof & First Question",
					OrderIndex:  1,
					Content: "I have been speaking to [Same Title as Prospect] from [Same Industry] and they " +
						"tell me that they are now involved in improving sourcing efficiency with the help of AI.\n\n" +
						"First question: Are you also involved in improving sourcing efficiency?",
					TalkingPoints: []string{
						"Lead with social proof from their peer group (same title, same industry)",
						"The first question is a simple yes/no that qualifies them instantly",
						"If they say no, uncover whether it is a timing issue or a priority issue",
					},
					Tips: "The social proof opener works because people trust peers in their role and " +
						"industry. Have a real example ready if they ask who you spoke with.",
				},
				{
					SectionType: "pitch",
					Title:       "Pain Discovery & Value Proposition",
					OrderIndex:  2,
					Content: "What's the most time-consuming part of your procurement process right now — " +
						"gathering stakeholder inputs, defining requirements, or evaluating vendors?\n\n" +
						"Mirror their answer, then: \"Our platform automates [Issue Mentioned]. A customer " +
						"improved their sourcing cycle by 40%. Worth 20 minutes on [Day] at [Time]?\"",
					TalkingPoints: []string{
						"Give them three options to choose from — easier than open-ended",
						"Mirror their answer back before pitching",
						"40% improvement is specific and credible",
					},
					Tips: "Whatever pain they pick, connect it directly to what the product solves.",
				},
				{
					SectionType: "objection_handling",
					Title:       "Differentiation & Objection Handling",
					OrderIndex:  3,
					Content: "OBJECTION: \"We already have a procurement tool.\"\n" +
						"RESPONSE: \"Most teams do — the difference is those tools still need you to do the " +
						"work. Nvelop's AI agent does the sourcing, writes the RFP, and evaluates vendors " +
						"autonomously. Worth 20 minutes to see the difference?\"\n\n" +
						"OBJECTION: \"Send me an email.\"\n" +
						"RESPONSE: \"Happy to. So I can send something relevant — what is the biggest " +
						"bottleneck in your sourcing process right now?\"",
					TalkingPoints: []string{
						"Lead with the key differentiator: AI agent vs. reporting tool",
						"Show don't tell — always push toward a demo",
						"For the email brush-off, use it to ask one more qualifying question",
					},
					Tips: "The agent vs. tool distinction is the strongest differentiator. Make it crystal clear.",
				},
				{
					SectionType: "close",
					Title:       "Call to Action",
					OrderIndex:  4,
					Content: "Would [Day] at [Time] work for a quick 20 minutes? I'll show you exactly how " +
						"it handles [Their Specific Pain Point] — no commitment, just a look.",
					TalkingPoints: []string{
						"Always offer a specific day and time — not open-ended",
						"Reference their specific pain point from earlier in the call",
						"Send the calendar invite while still on the call",
					},
					Tips: "Never end with 'I'll follow up by email.' Lock the meeting while you have them.",
				},
			},
		},
	}
}
