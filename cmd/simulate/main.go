package main

import (
	"fmt"
	"log"

	"birthplan-agent-be/pkg/plan"

	"github.com/fatih/color"
)

// Scripted conversation against the in-process engine. Useful for eyeballing
// stage transitions and replies without a running server or LLM.
func main() {
	engine := plan.NewEngine(plan.DefaultCatalog())
	session := plan.NewSession()

	userColor := color.New(color.FgCyan, color.Bold)
	botColor := color.New(color.FgGreen)
	stageColor := color.New(color.FgYellow)

	script := []string{
		"hallo",
		"select theme Pijnbestrijding",
		"select topic Epiduraal within theme Pijnbestrijding",
		"Ik wil graag eerst zonder medicatie proberen, maar sta open voor een epiduraal.",
		"select theme Bevalomgeving",
		"select topic Thuisbevalling within theme Bevalomgeving",
		"Het liefst beval ik thuis zolang dat medisch verantwoord is.",
		"edit answer to question Wat zijn je wensen rond \"Epiduraal\" binnen het thema \"Pijnbestrijding\"? to: Ik wil zo snel mogelijk een epiduraal.",
		"export plan",
	}

	fmt.Println("=== Birth Plan Conversation Simulation ===")
	for _, message := range script {
		userColor.Printf("\n> %s\n", message)

		action := plan.Interpret(message, session)
		result := engine.Apply(session, action)
		if result.Rejected {
			color.Red("  [rejected] %v", result.Err)
		}
		session = result.Session

		botColor.Printf("  %s\n", result.Reply)
		stageColor.Printf("  stage=%s themes=%d answers=%d\n", session.Stage, len(session.Themes), len(session.QA))
	}

	if err := plan.Exportable(session); err != nil {
		log.Fatalf("plan not exportable at end of script: %v", err)
	}

	doc := plan.Export(session)
	fmt.Println("\n=== Export ===")
	for _, theme := range doc.Themes {
		color.Magenta("%s", theme.Name)
		for _, qa := range theme.QA {
			fmt.Printf("  Q: %s\n  A: %s\n", qa.Question, qa.Answer)
		}
	}
}
