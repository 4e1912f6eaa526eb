// Package simplexml reads and writes legacy markup dashboards.
//
// A legacy dashboard is a nested, positional tree:
//
//	<form>
//	  <label>Web</label>
//	  <fieldset submitButton="false">
//	    <input type="dropdown" token="host"><label>Host</label></input>
//	  </fieldset>
//	  <row>
//	    <panel>
//	      <title>Requests</title>
//	      <single>
//	        <search><query>index=web | stats count</query></search>
//	        <option name="colorBy">value</option>
//	      </single>
//	    </panel>
//	  </row>
//	</form>
//
// [Parse] scans the markup as a stream of start, text and end tokens,
// tracking the open elements on an explicit stack. Elements are interpreted
// by name and position: a <label> is the dashboard label only as a direct
// child of the root, and any panel child other than title, search and
// description is taken as the visualization element. [Marshal] writes a
// dashboard back.
package simplexml
