package chaosrun

const (
	// ReferenceInputFileName is the deck for the unperturbed run.
	ReferenceInputFileName = "in.ref_chaos"
	// PerturbedInputFileName is the deck for the perturbed run.
	PerturbedInputFileName = "in.pert_chaos"
	// ReferenceDumpFileName is the trajectory written by the reference run.
	ReferenceDumpFileName = "dump.ref_chaos"
	// PerturbedDumpFileName is the trajectory written by the perturbed run.
	PerturbedDumpFileName = "dump.pert_chaos"

	// DefaultExecutable is the engine binary looked up on PATH.
	DefaultExecutable = "lmp"
)
