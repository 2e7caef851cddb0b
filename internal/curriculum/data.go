package curriculum

var phases = []Phase{
	{ID: "p1", Title: "Mathematical Foundations"},
	{ID: "p2", Title: "Statistical Modeling"},
	{ID: "p3", Title: "Market Microstructure"},
	{ID: "p4", Title: "Strategy & Execution"},
}

var weeks = []Week{
	{
		ID:      1,
		Phase:   "p1",
		Title:   "Probability & Python Toolkit",
		Summary: "Rebuild probability intuition and set up a vectorised research environment.",
		Concepts: []string{
			"Conditional probability",
			"Expectation and variance",
			"NumPy broadcasting",
		},
		Skills: map[Skill]int{SkillMath: 30, SkillStats: 15, SkillCoding: 25},
		Days: []DailyTask{
			{
				ID:    "w1d1",
				Title: "Probability Axioms",
				Morning: TimeBlock{
					Topic: "Sample spaces and events",
					Tasks: []string{
						"Read Blitzstein ch.1 on sample spaces",
						"Solve 10 counting problems by hand",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Environment setup",
					Tasks: []string{
						"Install Python 3.12 with a uv virtualenv",
						"Create the research repo skeleton",
					},
				},
				Night: TimeBlock{
					Topic: "Review",
					Tasks: []string{
						"Write a one-page summary of probability axioms",
					},
				},
				Focus: "Counting is the root of every brain teaser.",
			},
			{
				ID:    "w1d2",
				Title: "Conditional Probability",
				Morning: TimeBlock{
					Topic: "Bayes' rule",
					Tasks: []string{
						"Derive Bayes' rule from the definition",
						"Work the Monty Hall problem three ways",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Simulation",
					Tasks: []string{
						"Simulate Monty Hall with NumPy",
						"Plot convergence of the simulated win rate",
					},
				},
				Night: TimeBlock{
					Topic: "Interview drill",
					Tasks: []string{
						"Answer 5 conditional-probability interview questions",
					},
				},
				Focus: "Condition on what you know, never on what you wish.",
			},
			{
				ID:    "w1d3",
				Title: "Random Variables",
				Morning: TimeBlock{
					Topic: "Discrete distributions",
					Tasks: []string{
						"Derive the mean and variance of the binomial",
						"Prove linearity of expectation",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Vectorised code",
					Tasks: []string{
						"Rewrite a Python loop with NumPy broadcasting",
						"Benchmark loop versus vectorised versions",
					},
				},
				Night: TimeBlock{
					Topic: "Review",
					Tasks: []string{
						"Flashcards for common distributions",
					},
				},
				Focus: "Linearity of expectation needs no independence.",
			},
			{
				ID:    "w1d4",
				Title: "Continuous Distributions",
				Morning: TimeBlock{
					Topic: "Densities",
					Tasks: []string{
						"Derive the normal distribution moment generating function",
						"Compute exponential waiting-time probabilities",
					},
				},
				Afternoon: TimeBlock{
					Topic: "pandas basics",
					Tasks: []string{
						"Load daily SPY prices into a pandas DataFrame",
						"Compute log returns and their histogram",
					},
				},
				Night: TimeBlock{
					Topic: "Reading",
					Tasks: []string{
						"Read about fat tails in return distributions",
					},
				},
				Focus: "Returns are not normal; know how they differ.",
			},
			{
				ID:    "w1d5",
				Title: "Week 1 Consolidation",
				Morning: TimeBlock{
					Topic: "Mock interview",
					Tasks: []string{
						"Timed set of 8 probability puzzles",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Mini project",
					Tasks: []string{
						"Build a dice-game Monte Carlo notebook",
						"Push week 1 notebooks to git",
					},
				},
				Night: TimeBlock{
					Topic: "Retrospective",
					Tasks: []string{
						"Write the week 1 retrospective",
					},
				},
				Focus: "Consolidate before moving on.",
			},
		},
	},
	{
		ID:      2,
		Phase:   "p1",
		Title:   "Linear Algebra & Optimisation",
		Summary: "Matrices as portfolios, eigenvectors as risk factors, gradients as learning.",
		Concepts: []string{
			"Covariance matrices",
			"Eigendecomposition and PCA",
			"Convex optimisation",
		},
		Skills: map[Skill]int{SkillMath: 35, SkillCoding: 20, SkillStrategy: 10},
		Days: []DailyTask{
			{
				ID:    "w2d1",
				Title: "Matrices and Portfolios",
				Morning: TimeBlock{
					Topic: "Matrix algebra",
					Tasks: []string{
						"Express portfolio variance as w'Σw",
						"Prove a covariance matrix is positive semi-definite",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Implementation",
					Tasks: []string{
						"Estimate a covariance matrix for 10 stocks",
						"Compute portfolio volatility for random weights",
					},
				},
				Night: TimeBlock{
					Topic: "Review",
					Tasks: []string{
						"Summarise matrix identities used today",
					},
				},
				Focus: "Risk is a quadratic form.",
			},
			{
				ID:    "w2d2",
				Title: "Eigenvectors and PCA",
				Morning: TimeBlock{
					Topic: "Spectral theorem",
					Tasks: []string{
						"Derive PCA as a variance maximisation problem",
						"Work a 2x2 eigendecomposition by hand",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Factor extraction",
					Tasks: []string{
						"Run PCA on sector ETF returns",
						"Interpret the first three principal components",
					},
				},
				Night: TimeBlock{
					Topic: "Reading",
					Tasks: []string{
						"Read about statistical factor models",
					},
				},
				Focus: "The first component is usually the market.",
			},
			{
				ID:    "w2d3",
				Title: "Gradient Methods",
				Morning: TimeBlock{
					Topic: "Calculus review",
					Tasks: []string{
						"Derive the gradient of least squares loss",
						"Explain convexity and why it matters",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Implementation",
					Tasks: []string{
						"Implement gradient descent for linear regression",
						"Compare against the closed-form solution",
					},
				},
				Night: TimeBlock{
					Topic: "Drill",
					Tasks: []string{
						"Answer 5 calculus interview questions",
					},
				},
				Focus: "A convex problem has one answer.",
			},
			{
				ID:    "w2d4",
				Title: "Mean-Variance Optimisation",
				Morning: TimeBlock{
					Topic: "Markowitz",
					Tasks: []string{
						"Derive the minimum-variance portfolio with Lagrange multipliers",
						"Sketch the efficient frontier",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Solver",
					Tasks: []string{
						"Solve a long-only portfolio with cvxpy",
						"Plot the efficient frontier for 10 stocks",
					},
				},
				Night: TimeBlock{
					Topic: "Reading",
					Tasks: []string{
						"Read about estimation error in Markowitz portfolios",
					},
				},
				Focus: "Optimisers amplify estimation error.",
			},
			{
				ID:    "w2d5",
				Title: "Week 2 Consolidation",
				Morning: TimeBlock{
					Topic: "Mock interview",
					Tasks: []string{
						"Timed set of 6 linear algebra questions",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Mini project",
					Tasks: []string{
						"Build a PCA-based risk report notebook",
					},
				},
				Night: TimeBlock{
					Topic: "Retrospective",
					Tasks: []string{
						"Write the week 2 retrospective",
					},
				},
				Focus: "Tie linear algebra back to risk.",
			},
		},
	},
	{
		ID:      3,
		Phase:   "p1",
		Title:   "Stochastic Processes",
		Summary: "Random walks, Brownian motion and the maths behind option pricing.",
		Concepts: []string{
			"Random walks",
			"Brownian motion",
			"Ito's lemma",
		},
		Skills: map[Skill]int{SkillMath: 40, SkillStats: 15, SkillCoding: 10},
		Days: []DailyTask{
			{
				ID:    "w3d1",
				Title: "Random Walks",
				Morning: TimeBlock{
					Topic: "Gambler's ruin",
					Tasks: []string{
						"Solve gambler's ruin with a recurrence",
						"Compute expected hitting time of a barrier",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Simulation",
					Tasks: []string{
						"Simulate 10,000 random walk paths",
					},
				},
				Night: TimeBlock{
					Topic: "Drill",
					Tasks: []string{
						"Answer 5 random walk interview questions",
					},
				},
				Focus: "Martingales make hitting problems easy.",
			},
			{
				ID:    "w3d2",
				Title: "Brownian Motion",
				Morning: TimeBlock{
					Topic: "Definition",
					Tasks: []string{
						"Show Brownian motion as the limit of scaled random walks",
						"Compute quadratic variation of Brownian motion",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Simulation",
					Tasks: []string{
						"Simulate geometric Brownian motion price paths",
					},
				},
				Night: TimeBlock{
					Topic: "Review",
					Tasks: []string{
						"Summarise properties of Brownian motion",
					},
				},
				Focus: "Quadratic variation is why dW² = dt.",
			},
			{
				ID:    "w3d3",
				Title: "Ito Calculus",
				Morning: TimeBlock{
					Topic: "Ito's lemma",
					Tasks: []string{
						"Derive Ito's lemma from a Taylor expansion",
						"Apply Ito's lemma to log of GBM",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Black-Scholes",
					Tasks: []string{
						"Derive the Black-Scholes PDE by delta hedging",
						"Price a European call in Python",
					},
				},
				Night: TimeBlock{
					Topic: "Reading",
					Tasks: []string{
						"Read about risk-neutral pricing",
					},
				},
				Focus: "Hedging removes the drift.",
			},
			{
				ID:    "w3d4",
				Title: "Week 3 Consolidation",
				Morning: TimeBlock{
					Topic: "Mock interview",
					Tasks: []string{
						"Timed set of 6 stochastic calculus questions",
					},
				},
				Afternoon: TimeBlock{
					Topic: "Mini project",
					Tasks: []string{
						"Monte Carlo pricer checked against Black-Scholes",
					},
				},
				Night: TimeBlock{
					Topic: "Retrospective",
					Tasks: []string{
						"Write the week 3 retrospective",
					},
				},
				Focus: "Close phase one with a working pricer.",
			},
		},
	},
	{
		ID:       4,
		Phase:    "p2",
		Title:    "Time Series Analysis",
		Summary:  "Stationarity, autocorrelation and ARMA models on real returns.",
		Concepts: []string{"Stationarity", "ACF and PACF", "ARMA models"},
		Skills:   map[Skill]int{SkillStats: 40, SkillCoding: 20, SkillMarket: 5},
	},
	{
		ID:       5,
		Phase:    "p2",
		Title:    "Volatility Modeling",
		Summary:  "Volatility clustering, GARCH and realised volatility estimators.",
		Concepts: []string{"Volatility clustering", "GARCH(1,1)", "Realised volatility"},
		Skills:   map[Skill]int{SkillStats: 35, SkillMath: 10, SkillMarket: 15},
	},
	{
		ID:       6,
		Phase:    "p2",
		Title:    "Regression & Machine Learning",
		Summary:  "Cross-sectional regressions, regularisation and honest validation.",
		Concepts: []string{"Ridge and lasso", "Purged cross-validation", "Overfitting"},
		Skills:   map[Skill]int{SkillStats: 30, SkillCoding: 30, SkillStrategy: 10},
	},
	{
		ID:       7,
		Phase:    "p3",
		Title:    "Limit Order Books",
		Summary:  "How orders meet: queues, priorities and the anatomy of a book.",
		Concepts: []string{"Price-time priority", "Queue position", "Order types"},
		Skills:   map[Skill]int{SkillMarket: 40, SkillCoding: 20},
	},
	{
		ID:       8,
		Phase:    "p3",
		Title:    "Market Making",
		Summary:  "Inventory risk, spreads and the Avellaneda-Stoikov model.",
		Concepts: []string{"Bid-ask spread", "Inventory risk", "Avellaneda-Stoikov"},
		Skills:   map[Skill]int{SkillMarket: 35, SkillMath: 15, SkillStrategy: 20},
	},
	{
		ID:       9,
		Phase:    "p3",
		Title:    "High-Frequency Signals",
		Summary:  "Order flow imbalance, microprice and short-horizon alpha.",
		Concepts: []string{"Order flow imbalance", "Microprice", "Adverse selection"},
		Skills:   map[Skill]int{SkillMarket: 30, SkillStats: 20, SkillStrategy: 15},
	},
	{
		ID:       10,
		Phase:    "p4",
		Title:    "Backtesting",
		Summary:  "Event-driven backtests without look-ahead bias.",
		Concepts: []string{"Look-ahead bias", "Transaction costs", "Walk-forward testing"},
		Skills:   map[Skill]int{SkillCoding: 30, SkillStrategy: 30},
	},
	{
		ID:       11,
		Phase:    "p4",
		Title:    "Execution & Risk",
		Summary:  "Optimal execution, position sizing and drawdown control.",
		Concepts: []string{"Almgren-Chriss", "Kelly criterion", "Drawdown limits"},
		Skills:   map[Skill]int{SkillStrategy: 35, SkillMath: 15, SkillMarket: 15},
	},
	{
		ID:       12,
		Phase:    "p4",
		Title:    "Capstone & Interviews",
		Summary:  "Ship a documented strategy and rehearse the interview loop.",
		Concepts: []string{"Research write-up", "Live paper trading", "Interview loop"},
		Skills:   map[Skill]int{SkillStrategy: 30, SkillCoding: 15, SkillStats: 10, SkillMath: 10},
	},
}
