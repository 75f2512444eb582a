//go:build integration

package rod

const (
	formHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="login">
		<input id="email" type="text" name="email" value="old@example.com" />
		<input id="password" type="password" name="password" />
		<select id="role"><option>Viewer</option><option>Admin</option></select>
		<label><input id="remember" type="checkbox" /> Remember me</label>
		<button id="submit" type="button" disabled>Submit</button>
	</form>
	<div id="result"></div>
	<script>
		document.getElementById('submit').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Submitted ' + document.getElementById('email').value;
		});
	</script>
</body>
</html>`

	tabsHTML = `<!DOCTYPE html>
<html>
<body>
	<div role="tablist">
		<button role="tab" id="t1" aria-selected="true">Dashboard</button>
		<button role="tab" id="t2" aria-selected="false">Notifications</button>
	</div>
	<div role="tabpanel" aria-labelledby="t1">Dashboard panel</div>
	<div role="tabpanel" aria-labelledby="t2" hidden>Notifications panel</div>
	<div style="height: 3000px"></div>
	<div id="bottom">Bottom</div>
	<script>
		for (const tab of document.querySelectorAll('[role=tab]')) {
			tab.addEventListener('click', function() {
				for (const t of document.querySelectorAll('[role=tab]')) {
					t.setAttribute('aria-selected', t === tab ? 'true' : 'false');
					document.querySelector('[aria-labelledby="' + t.id + '"]').hidden = t !== tab;
				}
			});
		}
	</script>
</body>
</html>`

	windowsHTML = `<!DOCTYPE html>
<html>
<body>
	<a id="popup" href="?popup=1" target="_blank">Open</a>
	<button id="pick" onclick="document.getElementById('file').click()">Attach</button>
	<input id="file" type="file" style="display:none"
		onchange="document.getElementById('picked').textContent = this.files[0].name" />
	<div id="picked"></div>
	<div id="card" style="width:80px;height:40px;background:#ccc">Card</div>
	<div id="lane" style="width:200px;height:100px;margin-top:40px;background:#eee">Done</div>
	<script>
		let dragging = false;
		document.getElementById('card').addEventListener('mousedown', () => { dragging = true; });
		document.getElementById('lane').addEventListener('mouseup', () => {
			if (dragging) document.getElementById('lane').textContent = 'Dropped';
			dragging = false;
		});
	</script>
</body>
</html>`
)
