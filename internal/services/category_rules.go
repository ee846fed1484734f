package services

import "kids-activity-normalizer/internal/models"

// defaultCategoryRules returns the legacy-category mapping table. The slice
// order is load-bearing twice over: category lookup scans top to bottom,
// and umbrella keyword matching is first-listed-wins on substring
// collisions (e.g. "Martial" is listed before "Art" so "Martial Arts" never
// lands in Visual Arts).
func defaultCategoryRules() []CategoryRuleEntry {
	return []CategoryRuleEntry{
		{
			Category: "Swimming",
			Rule: CategoryRule{
				ActivityType: models.TypeSwimming,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Beginner", Subtype: "Learn to Swim"},
					{Keyword: "Learn", Subtype: "Learn to Swim"},
					{Keyword: "Advanced", Subtype: "Competitive Swim"},
					{Keyword: "Comp", Subtype: "Competitive Swim"},
					{Keyword: "Aqua", Subtype: "Aquatic Fitness"},
					{Keyword: "Dive", Subtype: "Diving"},
					{Keyword: "Lifeguard", Subtype: "Lifesaving"},
					{Keyword: "Lifesaving", Subtype: "Lifesaving"},
				},
				DefaultSubtype: "Swim Lessons",
			},
		},
		{
			Category: "Swimming & Aquatics",
			Rule: CategoryRule{
				ActivityType: models.TypeSwimming,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Beginner", Subtype: "Learn to Swim"},
					{Keyword: "Learn", Subtype: "Learn to Swim"},
					{Keyword: "Advanced", Subtype: "Competitive Swim"},
					{Keyword: "Lifeguard", Subtype: "Lifesaving"},
				},
				DefaultSubtype: "Swim Lessons",
			},
		},
		{
			Category: "Team Sports",
			Rule: CategoryRule{
				ActivityType: models.TypeTeamSports,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Basketball", Subtype: "Basketball"},
					{Keyword: "Soccer", Subtype: "Soccer"},
					{Keyword: "Baseball", Subtype: "Baseball"},
					{Keyword: "Volleyball", Subtype: "Volleyball"},
					{Keyword: "Hockey", Subtype: "Hockey"},
					{Keyword: "Football", Subtype: "Flag Football"},
					{Keyword: "Lacrosse", Subtype: "Lacrosse"},
				},
			},
		},
		{
			Category: "Racquet Sports",
			Rule: CategoryRule{
				ActivityType: models.TypeRacquetSports,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Tennis", Subtype: "Tennis"},
					{Keyword: "Badminton", Subtype: "Badminton"},
					{Keyword: "Squash", Subtype: "Squash"},
					{Keyword: "Pickle", Subtype: "Pickleball"},
					{Keyword: "Table", Subtype: "Table Tennis"},
				},
			},
		},
		{
			Category: "Martial Arts",
			Rule: CategoryRule{
				ActivityType: models.TypeMartialArts,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Karate", Subtype: "Karate"},
					{Keyword: "Taekwondo", Subtype: "Taekwondo"},
					{Keyword: "Judo", Subtype: "Judo"},
					{Keyword: "Jiu", Subtype: "Jiu-Jitsu"},
					{Keyword: "Kung", Subtype: "Kung Fu"},
					{Keyword: "Aikido", Subtype: "Aikido"},
				},
			},
		},
		{
			Category: "Dance",
			Rule: CategoryRule{
				ActivityType: models.TypeDance,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Ballet", Subtype: "Ballet"},
					{Keyword: "Jazz", Subtype: "Jazz"},
					{Keyword: "Hip", Subtype: "Hip Hop"},
					{Keyword: "Tap", Subtype: "Tap"},
					{Keyword: "Creative", Subtype: "Creative Movement"},
					{Keyword: "Ballroom", Subtype: "Ballroom"},
				},
			},
		},
		{
			Category: "Music",
			Rule: CategoryRule{
				ActivityType: models.TypeMusic,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Piano", Subtype: "Piano"},
					{Keyword: "Guitar", Subtype: "Guitar"},
					{Keyword: "Ukulele", Subtype: "Ukulele"},
					{Keyword: "Voice", Subtype: "Voice"},
					{Keyword: "Choir", Subtype: "Choir"},
					{Keyword: "Drum", Subtype: "Drums"},
				},
			},
		},
		{
			Category: "Arts - Visual",
			Rule: CategoryRule{
				ActivityType: models.TypeVisualArts,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Draw", Subtype: "Drawing"},
					{Keyword: "Paint", Subtype: "Painting"},
					{Keyword: "Pottery", Subtype: "Pottery"},
					{Keyword: "Sculpt", Subtype: "Sculpture"},
					{Keyword: "Craft", Subtype: "Crafts"},
					{Keyword: "Cartoon", Subtype: "Cartooning"},
				},
			},
		},
		{
			Category: "Arts - Performing",
			Rule: CategoryRule{
				ActivityType: models.TypePerformingArts,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Drama", Subtype: "Drama"},
					{Keyword: "Theatre", Subtype: "Theatre"},
					{Keyword: "Theater", Subtype: "Theatre"},
					{Keyword: "Musical", Subtype: "Musical Theatre"},
					{Keyword: "Improv", Subtype: "Improv"},
				},
			},
		},
		{
			Category: "Skating",
			Rule: CategoryRule{
				ActivityType: models.TypeSkating,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Figure", Subtype: "Figure Skating"},
					{Keyword: "Learn", Subtype: "Learn to Skate"},
					{Keyword: "Hockey", Subtype: "Hockey Skills"},
					{Keyword: "Roller", Subtype: "Roller Skating"},
					{Keyword: "Board", Subtype: "Skateboarding"},
				},
				DefaultSubtype: "Skating",
			},
		},
		{
			Category: "Gymnastics",
			Rule: CategoryRule{
				ActivityType: models.TypeGymnastics,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Rhythmic", Subtype: "Rhythmic Gymnastics"},
					{Keyword: "Trampoline", Subtype: "Trampoline"},
					{Keyword: "Tumbl", Subtype: "Tumbling"},
					{Keyword: "Parkour", Subtype: "Parkour"},
				},
				DefaultSubtype: "Gymnastics",
			},
		},
		{
			Category: "Camps",
			Rule: CategoryRule{
				ActivityType: models.TypeCamps,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Summer", Subtype: "Summer Camp"},
					{Keyword: "Spring", Subtype: "Spring Break Camp"},
					{Keyword: "Winter", Subtype: "Winter Camp"},
					{Keyword: "Pro-D", Subtype: "Pro-D Day Camp"},
					{Keyword: "Day", Subtype: "Day Camp"},
				},
				DefaultSubtype: "Day Camp",
			},
		},
		{
			Category: "Fitness",
			Rule: CategoryRule{
				ActivityType: models.TypeFitness,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Yoga", Subtype: "Yoga"},
					{Keyword: "Spin", Subtype: "Spin"},
					{Keyword: "Strength", Subtype: "Strength Training"},
					{Keyword: "Run", Subtype: "Running"},
				},
			},
		},
		{
			Category: "Cooking",
			Rule: CategoryRule{
				ActivityType:   models.TypeCulinary,
				DefaultSubtype: "Cooking",
			},
		},
		{
			Category: "Languages",
			Rule: CategoryRule{
				ActivityType: models.TypeLanguage,
				SubtypeRules: []SubtypeRule{
					{Keyword: "French", Subtype: "French"},
					{Keyword: "Spanish", Subtype: "Spanish"},
					{Keyword: "Mandarin", Subtype: "Mandarin"},
				},
			},
		},
		{
			Category: "Adapted Programs",
			Rule: CategoryRule{
				ActivityType: models.TypeSpecialNeeds,
			},
		},
		{
			Category: "School Age",
			Rule: CategoryRule{
				ParseSubcategory: true,
				Mappings: []SubcategoryRule{
					{Keyword: "Basketball", Type: models.TypeTeamSports, Subtype: "Basketball"},
					{Keyword: "Soccer", Type: models.TypeTeamSports, Subtype: "Soccer"},
					{Keyword: "Volleyball", Type: models.TypeTeamSports, Subtype: "Volleyball"},
					{Keyword: "Ball Hockey", Type: models.TypeTeamSports, Subtype: "Ball Hockey"},
					{Keyword: "Swim", Type: models.TypeSwimming, Subtype: "Learn to Swim"},
					{Keyword: "Skate", Type: models.TypeSkating, Subtype: ""},
					{Keyword: "Gym", Type: models.TypeGymnastics, Subtype: "Gymnastics"},
					{Keyword: "Dance", Type: models.TypeDance, Subtype: ""},
					{Keyword: "Martial", Type: models.TypeMartialArts, Subtype: ""},
					{Keyword: "Karate", Type: models.TypeMartialArts, Subtype: "Karate"},
					{Keyword: "Art", Type: models.TypeVisualArts, Subtype: ""},
					{Keyword: "Music", Type: models.TypeMusic, Subtype: ""},
					{Keyword: "Science", Type: models.TypeSTEM, Subtype: "Science"},
					{Keyword: "Coding", Type: models.TypeSTEM, Subtype: "Coding"},
					{Keyword: "Chess", Type: models.TypeSTEM, Subtype: "Chess"},
					{Keyword: "Cook", Type: models.TypeCulinary, Subtype: "Cooking"},
					{Keyword: "Climb", Type: models.TypeOutdoor, Subtype: "Climbing"},
					{Keyword: "Tennis", Type: models.TypeRacquetSports, Subtype: "Tennis"},
					{Keyword: "Babysit", Type: models.TypeLifeSkills, Subtype: "Babysitting Certification"},
					{Keyword: "Home Alone", Type: models.TypeLifeSkills, Subtype: "Home Alone Safety"},
					{Keyword: "Multisport", Type: models.TypeIndividualSports, Subtype: "Multisport"},
				},
			},
		},
		{
			Category: "Youth",
			Rule: CategoryRule{
				ParseSubcategory: true,
				Mappings: []SubcategoryRule{
					{Keyword: "Basketball", Type: models.TypeTeamSports, Subtype: "Basketball"},
					{Keyword: "Volleyball", Type: models.TypeTeamSports, Subtype: "Volleyball"},
					{Keyword: "Leadership", Type: models.TypeLeadership, Subtype: "Youth Leadership"},
					{Keyword: "Volunteer", Type: models.TypeLeadership, Subtype: "Volunteering"},
					{Keyword: "Fitness", Type: models.TypeFitness, Subtype: "Youth Fitness"},
					{Keyword: "Weight", Type: models.TypeFitness, Subtype: "Strength Training"},
					{Keyword: "Swim", Type: models.TypeSwimming, Subtype: ""},
					{Keyword: "Lifeguard", Type: models.TypeSwimming, Subtype: "Lifesaving"},
					{Keyword: "Climb", Type: models.TypeOutdoor, Subtype: "Climbing"},
					{Keyword: "Hike", Type: models.TypeOutdoor, Subtype: "Hiking"},
					{Keyword: "Martial", Type: models.TypeMartialArts, Subtype: ""},
					{Keyword: "Art", Type: models.TypeVisualArts, Subtype: ""},
					{Keyword: "Cook", Type: models.TypeCulinary, Subtype: "Cooking"},
					{Keyword: "Babysit", Type: models.TypeLifeSkills, Subtype: "Babysitting Certification"},
					{Keyword: "First Aid", Type: models.TypeLifeSkills, Subtype: "First Aid"},
				},
			},
		},
		{
			Category: "Early Years: Parent Participation",
			Rule: CategoryRule{
				ActivityType: models.TypeEarlyDevelopment,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Music", Subtype: "Music & Movement"},
					{Keyword: "Gym", Subtype: "Parent & Tot Gym"},
					{Keyword: "Swim", Subtype: "Parent & Tot Swim"},
					{Keyword: "Play", Subtype: "Playtime"},
				},
				DefaultSubtype: "Parent & Tot",
			},
		},
		{
			Category: "Early Years: On My Own",
			Rule: CategoryRule{
				ActivityType: models.TypeEarlyDevelopment,
				SubtypeRules: []SubtypeRule{
					{Keyword: "Preschool", Subtype: "Preschool Prep"},
					{Keyword: "Music", Subtype: "Music & Movement"},
					{Keyword: "Sport", Subtype: "Intro to Sports"},
					{Keyword: "Art", Subtype: "Little Artists"},
				},
			},
		},
		{
			Category: "All Ages & Family",
			Rule: CategoryRule{
				ParseSubcategory: true,
				Mappings: []SubcategoryRule{
					{Keyword: "Swim", Type: models.TypeSwimming, Subtype: "Family Swim"},
					{Keyword: "Skate", Type: models.TypeSkating, Subtype: "Family Skate"},
					{Keyword: "Gym", Type: models.TypeGymnastics, Subtype: "Family Gym"},
					{Keyword: "Event", Type: models.TypeOutdoor, Subtype: "Community Event"},
				},
			},
		},
	}
}
