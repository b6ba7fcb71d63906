package hci

import "github.com/edgebt/bredr"

var logger = bredr.GetLogger().ChildLogger(map[string]interface{}{"pkg": "hci"})
