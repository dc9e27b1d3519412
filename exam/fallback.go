package exam

// Canned answers used once the model keeps failing validation. Each one has
// the full section layout of its mode.

const notesFallback = `Key Terms:
- Aggregate demand: total planned spending in the economy.
- Equilibrium: the point where planned supply equals planned demand.
- Ceteris paribus: all other factors held constant.

Core Points:
- Start from the definition and the assumptions of the model.
- Identify the variables on each axis and the direction of causation.
- Explain what shifts the curves and what moves along them.
- Link the mechanism to a real policy lever (fiscal or monetary).
- State the short-run and long-run outcomes separately.
- Mention one limitation of the model.

Diagram Suggestion:
- Output (Y) on the x-axis, price level or interest rate on the y-axis.
- Draw the initial equilibrium, then shift the relevant curve and label the new point.

Likely Exam Questions:
1. Define the concept and explain its assumptions.
2. Explain the effect of an expansionary policy with a diagram.
3. Discuss the limitations of the model.`

const mcqFallback = `Q1. Ceteris paribus means:
A) All variables change together
B) Other factors are held constant
C) Prices are fixed by government
D) Demand equals supply

Q2. A rightward shift of the demand curve, with supply unchanged, leads to:
A) Lower price and lower quantity
B) Higher price and higher quantity
C) Lower price and higher quantity
D) No change in equilibrium

Q3. Expansionary monetary policy usually:
A) Raises interest rates
B) Reduces money supply
C) Lowers interest rates
D) Increases taxes

Q4. Opportunity cost is:
A) The money price of a good
B) The sunk cost of production
C) The total cost of all options
D) The value of the next best alternative forgone

Q5. GDP measures:
A) Total wealth of a country
B) Market value of final goods and services produced in a period
C) Government revenue
D) Exports minus imports

Answer Key:
1-B, 2-B, 3-C, 4-D, 5-B`

const pyqFallback = `How to Structure the Answer:
- Intro: define the model and state its purpose.
- Body: explain each component, the equilibrium and the effect of shifts.
- Conclusion: summarize the uses and limits of the model.

Key Points to Include:
- Meaning and slope of each curve.
- The equilibrium condition.
- Effect of a fiscal policy shift.
- Effect of a monetary policy shift.
- Main assumptions.

Common Examiner Expectations:
- Correctly labelled axes.
- Clear shifts and outcomes on the diagram.
- Brief mention of assumptions and limits.

Sample Past-Year Questions:
1. Explain the model with a diagram and its equilibrium.
2. Show the effect of expansionary fiscal policy using the model.`

const explainFallback = `Definition:
A concept in economics describes how agents respond to incentives under given constraints.

Intuition:
When a price or an incentive changes, people and firms adjust what they buy, sell or produce.

Example:
If the price of a good rises while incomes stay the same, households usually buy less of it.

Common Mistakes:
- Confusing a movement along a curve with a shift of the curve.
- Ignoring the ceteris paribus assumption.

Quick Recap:
- Define the concept precisely.
- Explain the mechanism in plain words.
- Support it with one generic example.`

const numericalFallback = `What Is Asked:
Compute the required value from the data given in the question.

Given:
- List every value from the question with its unit.
- State any assumption needed, such as a closed economy.

Step-by-Step Solution:
1. Write the relevant formula.
2. Substitute the given values.
3. Simplify one step at a time and keep units throughout.

Final Answer:
State the computed value with its unit and a one-line interpretation.

Common Pitfalls:
- Mixing percentages and decimals.
- Dropping units between steps.`

const examFallback = `Introduction:
Define the concept and state why it matters for the economy.

Main Body:
- Explain the underlying theory and its assumptions.
- Describe the mechanism step by step, with a diagram where relevant.
- Discuss the policy implications.

Example:
Use one generic, realistic example without claiming official figures.

Conclusion:
Summarize the main argument and note one limitation.`
