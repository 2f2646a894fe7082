package constant

const (
	// DefaultVlogFile is stored when a submission carries no vlog_file.
	DefaultVlogFile = "demo_vlog.mp4"

	DefaultListLimit = 100
	DefaultListSkip  = 0

	// DashboardFetchLimit is how many records the dashboard and the export
	// command pull before filtering client-side.
	DashboardFetchLimit = 1000
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
