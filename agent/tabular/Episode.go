package tabular

import (
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/exploration"
)

// Act selects an action in state. If the policy chooses to explore,
// the environment picks a random action. Otherwise, the greedy action
// with respect to the table is chosen, breaking ties in favour of the
// earliest action in actions.
//
// Act panics if the policy exploits and actions is empty: an
// environment must always offer at least one action in a non-terminal
// state.
func Act[S, A comparable](table *Table[S, A], choice exploration.Choice,
	env environment.Environment[S, A], state S, actions []A) A {
	if choice == exploration.Explore {
		return env.RandomAction()
	}
	return table.Argmax(state, actions)
}

// Episode runs one episode to completion. At each step, act selects an
// action given the current state and its legal actions, the
// environment is stepped, and learn is called with the resulting
// transition and the actions legal in the next state. Legal actions
// are not queried once the episode has ended.
//
// The returned Summary holds the return, number of steps, and end type
// of the episode; the caller fills in the episode index and ε.
func Episode[S, A comparable](env environment.Environment[S, A],
	act func(state S, actions []A) A,
	learn func(exp agent.Experience[S, A], nextActions []A)) agent.Summary {
	var summary agent.Summary

	step := env.Reset()
	state := step.Observation
	actions := env.Actions()

	for {
		action := act(state, actions)
		step = env.Step(action)
		summary.Return += step.Reward
		summary.Steps++

		exp := agent.Experience[S, A]{
			State:  state,
			Action: action,
			Reward: step.Reward,
		}

		if step.Last() {
			learn(exp, nil)
			summary.End = step.EndType()
			return summary
		}

		next := step.Observation
		exp.NextState = &next
		actions = env.Actions()
		learn(exp, actions)

		state = next
	}
}
