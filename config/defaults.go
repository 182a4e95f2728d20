package config

import "github.com/awantoch/hello/constants"

// DefaultConfigPath is looked up in the working directory. Its absence is
// not an error.
const DefaultConfigPath = constants.ConfigFileName
