package normalize

import (
	"strings"

	"github.com/nao1215/solscan/internal/model"
)

// Well-known program identifiers.
const (
	systemProgram        = "11111111111111111111111111111111"
	tokenProgram         = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	token2022Program     = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	ataProgram           = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	stakeProgram         = "Stake11111111111111111111111111111111111111"
	voteProgram          = "Vote111111111111111111111111111111111111111"
	memoProgram          = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
	memoV1Program        = "Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo"
	computeBudgetProgram = "ComputeBudget111111111111111111111111111111"

	jupiterProgram = "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"
	raydiumProgram = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	orcaProgram    = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"
)

// closeAccountInstruction is the SPL token instruction tag for CloseAccount.
const closeAccountInstruction = 9

type programInfo struct {
	name     string
	category model.InstructionCategory
}

// knownPrograms is the fixed classification table for well-known programs.
var knownPrograms = map[string]programInfo{
	systemProgram:        {name: "System Program", category: model.CategoryTransfer},
	tokenProgram:         {name: "Token Program", category: model.CategoryTokenOperation},
	token2022Program:     {name: "Token-2022 Program", category: model.CategoryTokenOperation},
	ataProgram:           {name: "Associated Token Account Program", category: model.CategoryTokenOperation},
	stakeProgram:         {name: "Stake Program", category: model.CategoryStake},
	voteProgram:          {name: "Vote Program", category: model.CategoryVote},
	memoProgram:          {name: "Memo Program", category: model.CategoryProgramInteraction},
	memoV1Program:        {name: "Memo Program v1", category: model.CategoryProgramInteraction},
	computeBudgetProgram: {name: "Compute Budget Program", category: model.CategoryProgramInteraction},
	jupiterProgram:       {name: "Jupiter Aggregator", category: model.CategorySwap},
	raydiumProgram:       {name: "Raydium AMM", category: model.CategorySwap},
	orcaProgram:          {name: "Orca Whirlpools", category: model.CategorySwap},
}

// memoPrograms holds the program ids whose instruction data is memo text.
var memoPrograms = map[string]bool{
	memoProgram:   true,
	memoV1Program: true,
}

// tokenPrograms holds the program ids that accept SPL token instructions.
var tokenPrograms = map[string]bool{
	tokenProgram:     true,
	token2022Program: true,
}

// categorize classifies an instruction by its target program id. Unknown
// identifiers whose textual form suggests a DEX are classified as swaps,
// everything else as a generic program interaction.
func categorize(programID string) (model.InstructionCategory, string) {
	if info, ok := knownPrograms[programID]; ok {
		return info.category, info.name
	}

	lower := strings.ToLower(programID)
	for _, marker := range []string{"swap", "dex", "amm"} {
		if strings.Contains(lower, marker) {
			return model.CategorySwap, ""
		}
	}
	if strings.HasPrefix(lower, "jup") {
		return model.CategorySwap, ""
	}

	return model.CategoryProgramInteraction, ""
}
