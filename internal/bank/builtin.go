package bank

// displayCatalog backs the catalog viewer. Entries may be short-answer only.
var displayCatalog = []QuizItem{
	{
		ID:            "1",
		Question:      "Which greenhouse gas is the main driver of global warming?",
		Options:       []string{"Carbon dioxide (CO2)", "Methane (CH4)", "Nitrous oxide (N2O)", "CFCs"},
		CorrectAnswer: Answer(0),
	},
	{
		ID:       "2",
		Question: "Name one everyday habit that reduces single-use plastic waste.",
	},
	{
		ID:       "3",
		Question: "What does the 'R' in the 3R campaign (reduce, reuse, recycle) that comes first ask you to do?",
	},
	{
		ID:            "4",
		Question:      "Which of these is a renewable energy source?",
		Options:       []string{"Coal", "Natural gas", "Wind", "Diesel"},
		CorrectAnswer: Answer(2),
	},
}

// scoredCatalog is answer-complete and feeds the quiz player.
var scoredCatalog = []QuizItem{
	{
		ID:            "1",
		Question:      "Which greenhouse gas makes up the largest share of emissions driving global warming?",
		Options:       []string{"Carbon dioxide (CO2)", "Methane (CH4)", "Nitrous oxide (N2O)", "CFCs"},
		CorrectAnswer: Answer(0),
	},
	{
		ID:            "2",
		Question:      "Which of the following cannot be recycled?",
		Options:       []string{"Coated paper cup", "Aluminium can", "Glass bottle", "PET bottle"},
		CorrectAnswer: Answer(0),
	},
	{
		ID:            "3",
		Question:      "Which ecosystem has the richest biodiversity?",
		Options:       []string{"Desert", "Tropical rainforest", "Grassland", "Tundra"},
		CorrectAnswer: Answer(1),
	},
	{
		ID:            "4",
		Question:      "What is the particle diameter of fine dust (PM2.5)?",
		Options:       []string{"2.5mm or less", "2.5µm or less", "25µm or less", "250µm or less"},
		CorrectAnswer: Answer(1),
	},
	{
		ID:            "5",
		Question:      "Roughly what percentage of Earth's water is fresh water?",
		Options:       []string{"1%", "3%", "5%", "10%"},
		CorrectAnswer: Answer(1),
	},
	{
		ID:            "6",
		Question:      "Which household appliance usually consumes the most electricity?",
		Options:       []string{"Refrigerator", "Air conditioner", "Washing machine", "TV"},
		CorrectAnswer: Answer(1),
	},
	{
		ID:            "7",
		Question:      "Which substance is the main cause of ozone layer depletion?",
		Options:       []string{"Carbon dioxide", "CFCs", "Methane", "Carbon monoxide"},
		CorrectAnswer: Answer(1),
	},
	{
		ID:            "8",
		Question:      "What mainly causes acid rain?",
		Options:       []string{"Sulfur and nitrogen oxides", "Carbon dioxide", "Methane", "Water vapour"},
		CorrectAnswer: Answer(0),
	},
	{
		ID:            "9",
		Question:      "Which of these is not a renewable energy source?",
		Options:       []string{"Solar", "Wind", "Natural gas", "Geothermal"},
		CorrectAnswer: Answer(2),
	},
	{
		ID:            "10",
		Question:      "What is the core principle of sustainable development?",
		Options:       []string{"Economic growth first", "Environmental protection first", "Balance between present and future generations", "Technology first"},
		CorrectAnswer: Answer(2),
	},
}
